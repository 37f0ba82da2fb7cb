// Package forms validates submitted venue, artist and show forms. Every
// field is checked independently and all failures are collected into a
// field -> reasons map before anything is reported, so a form never gets
// partially validated.
package forms

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// VenueForm carries the submitted fields for creating or editing a venue.
type VenueForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required,usstate"`
	Address            string   `form:"address" validate:"required"`
	Phone              string   `form:"phone" validate:"required,usphone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	Website            string   `form:"website" validate:"omitempty,url"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description"`
}

// ArtistForm carries the submitted fields for creating or editing an artist.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required,usstate"`
	Phone              string   `form:"phone" validate:"required,usphone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	Website            string   `form:"website" validate:"omitempty,url"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description"`
}

// ShowForm carries the submitted fields for creating a show. Venue and
// artist ids are not checked against the database here; a dangling id is
// rejected by the foreign-key constraint at persistence time.
type ShowForm struct {
	VenueID   int64     `form:"venue_id" validate:"required"`
	ArtistID  int64     `form:"artist_id" validate:"required"`
	StartTime time.Time `form:"start_time" time_format:"2006-01-02 15:04:05" time_utc:"1" validate:"required"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report form field names, not Go struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("usstate", func(fl validator.FieldLevel) bool {
		return IsState(fl.Field().String())
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return IsGenre(fl.Field().String())
	})
	_ = v.RegisterValidation("usphone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks every rule on the form and returns a map from field name
// to failure reasons. A nil map means the form is valid.
func Validate(form any) map[string][]string {
	validateOnce.Do(func() { validate = newValidator() })

	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"form": {err.Error()}}
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// dive errors come back as genres[0]; collapse onto the field itself
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		fields[name] = append(fields[name], reason(fe))
	}
	return fields
}

// FailedFields lists the failing field names in a stable order, for the
// "Invalid value found in ..." notice.
func FailedFields(fields map[string][]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InvalidNotice builds the user-visible notice for a failed submission,
// naming every failing field.
func InvalidNotice(fields map[string][]string) string {
	return "Invalid value found in " + strings.Join(FailedFields(fields), ", ") + " field(s)."
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "usstate":
		return "must be a two-letter US state code"
	case "usphone":
		return "must be a phone number like 123-456-7890"
	case "genre":
		return "contains an unrecognized genre"
	case "url":
		return "must be a valid URL"
	case "min":
		return "needs at least one value"
	default:
		return "is invalid"
	}
}
