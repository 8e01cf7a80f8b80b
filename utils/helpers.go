package utils

// ValidContactTypes is the canonical contact_type enumeration. Earlier schema
// revisions used a different value set; only this one is accepted.
var ValidContactTypes = []string{"visit", "phone_call", "whatsapp", "email", "social_media", "in_person"}

var ValidContactMethods = []string{"web", "mobile_app", "api", "admin_panel"}

var ValidActivityTypes = []string{
	"product_added", "product_updated", "product_deleted",
	"store_contacted", "excel_uploaded", "login", "logout",
	"profile_updated", "password_changed", "store_info_updated",
}

func IsValidContactType(contactType string) bool {
	return contains(ValidContactTypes, contactType)
}

func IsValidContactMethod(contactMethod string) bool {
	return contains(ValidContactMethods, contactMethod)
}

func IsValidActivityType(activityType string) bool {
	return contains(ValidActivityTypes, activityType)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
