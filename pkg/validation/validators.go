package validation

import (
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxPushTokenLength bounds a device registration token.
const MaxPushTokenLength = 4096

// Regex patterns
var (
	// Zero-padded 24h wall clock
	clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

	// FCM/APNs tokens are long opaque strings without whitespace.
	// regexp caps repeat counts at 1000, so the upper bound lives in PushToken.
	pushTokenRegex = regexp.MustCompile(`^[A-Za-z0-9_:\-.]{16,}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("clock", Clock)
	_ = v.RegisterValidation("calendar_date", CalendarDate)
	_ = v.RegisterValidation("push_token", PushToken)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("not_blank", NotBlank)
}

// Clock validates a zero-padded HH:MM time of day
func Clock(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return clockRegex.MatchString(val)
}

// CalendarDate validates a YYYY-MM-DD date that actually exists
func CalendarDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", val)
	return err == nil
}

// PushToken validates the shape of a device registration token
func PushToken(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return len(val) <= MaxPushTokenLength && pushTokenRegex.MatchString(val)
}

// NotBlank rejects strings made only of whitespace
func NotBlank(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
