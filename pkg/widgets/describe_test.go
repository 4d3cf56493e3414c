package widgets_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formfields/pkg/testsupport"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

const contactDefinition = `
forms:
  contact:
    fields:
      - name: email
        type: email
        label: E-mail
      - name: topic
        type: choice
        choices:
          - value: sales
            label: Sales
          - value: support
            label: Support
      - name: when
        type: splitdatetime
        required: false
      - name: subscribe
        type: boolean
        required: false
        initial: true
      - name: token
        type: char
        widget: hidden
        required: false
        initial: abc
`

func TestDescribeGolden(t *testing.T) {
	reg := testsupport.MustBuildForms(t, contactDefinition)
	got := testsupport.RoundTripJSON(t, widgets.NewRegistry().Describe(reg.MustGet("contact")))

	goldenPath := filepath.Join("testdata", "contact.golden.json")
	testsupport.WriteGolden(t, goldenPath, got)
	want := testsupport.MustLoadDescription(t, goldenPath)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("description mismatch (-want +got):\n%s", diff)
	}
}
