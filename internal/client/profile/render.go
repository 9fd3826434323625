package profile

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	bannerTitle    = "Update Your Profile"
	bannerSubtitle = "Make sure your details are up to date!"
	formTitle      = "Edit Profile"
	previewTitle   = "Your Updated Profile"

	mask = "********"
)

var previewLabels = []struct{ field, label string }{
	{FieldFirstName, "First Name"},
	{FieldMiddleName, "Middle Name"},
	{FieldLastName, "Last Name"},
	{FieldEmail, "Email"},
	{FieldContactNumber, "Contact Number"},
}

// Render writes the banner, the form and the live preview to w. Empty
// fields show their placeholder; passwords are masked to a fixed width.
func (e *Editor) Render(w io.Writer) error {
	f := e.Form()

	rule := strings.Repeat("=", len(bannerSubtitle))
	if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n\n%s\n", rule, bannerTitle, bannerSubtitle, rule, formTitle); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, field := range Fields {
		v, _ := f.Get(field)
		switch {
		case v == "":
			v = "<" + Placeholder(field) + ">"
		case IsSecret(field):
			v = mask
		}
		fmt.Fprintf(tw, "  %s\t%s\n", field, v)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", previewTitle); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, p := range previewLabels {
		v, _ := f.Get(p.field)
		fmt.Fprintf(tw, "  %s:\t%s\n", p.label, v)
	}
	return tw.Flush()
}
