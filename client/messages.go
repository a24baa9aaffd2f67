package client

import "strings"

// Messages is the user-facing text catalog. Error texts are prefixes; the
// backend's message is appended.
type Messages struct {
	Saving          string
	Saved           string
	SaveError       string
	Updating        string
	Updated         string
	UpdateError     string
	ConnectionError string
	NoSession       string
	DeleteConfirm   string
	Deleted         string
	DeleteFailed    string
	DeleteError     string
}

var English = Messages{
	Saving:          "Saving...",
	Saved:           "Token saved successfully ✅",
	SaveError:       "Error: ",
	Updating:        "Updating...",
	Updated:         "Bio updated successfully ✅",
	UpdateError:     "Error: ",
	ConnectionError: "Could not reach the server",
	NoSession:       "Save a token first",
	DeleteConfirm:   "Are you sure you want to delete the token?",
	Deleted:         "Token deleted",
	DeleteFailed:    "Delete failed",
	DeleteError:     "An error occurred while deleting",
}

var Arabic = Messages{
	Saving:          "جارٍ الحفظ...",
	Saved:           "تم حفظ التوكن بنجاح ✅",
	SaveError:       "خطأ: ",
	Updating:        "جارٍ التحديث...",
	Updated:         "تم تحديث البايو بنجاح ✅",
	UpdateError:     "خطأ: ",
	ConnectionError: "حدث خطأ في الاتصال بالخادم",
	NoSession:       "احفظ التوكن أولاً",
	DeleteConfirm:   "هل أنت متأكد من حذف التوكن؟",
	Deleted:         "تم حذف التوكن",
	DeleteFailed:    "فشل الحذف",
	DeleteError:     "حدث خطأ أثناء الحذف",
}

// MessagesFor picks a catalog by language tag or POSIX locale ("ar",
// "ar-SA", "ar_SA.UTF-8", "en"...), falling back to English.
func MessagesFor(lang string) Messages {
	var base string
	parts := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(lang)), func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	if len(parts) > 0 {
		base = parts[0]
	}
	switch base {
	case "ar":
		return Arabic
	}
	return English
}
