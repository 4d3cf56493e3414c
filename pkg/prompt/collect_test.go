package prompt_test

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/prompt"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	textAreas []string
	selectIdx []int
	multiIdx  [][]int
	confirm   []bool
	err       error

	messages []string
	infos    []string
	selects  []prompt.SelectConfig
}

func (s *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.err != nil {
		return "", s.err
	}
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if len(s.passwords) == 0 {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[0]
	s.passwords = s.passwords[1:]
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[0]
	s.confirm = s.confirm[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	s.selects = append(s.selects, cfg)
	if len(s.selectIdx) == 0 {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[0]
	s.selectIdx = s.selectIdx[1:]
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	s.messages = append(s.messages, cfg.Message)
	if len(s.multiIdx) == 0 {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[0]
	s.multiIdx = s.multiIdx[1:]
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg prompt.TextAreaConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if len(s.textAreas) == 0 {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[0]
	s.textAreas = s.textAreas[1:]
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func signupForm() *forms.Form {
	return forms.New(forms.WithName("signup")).
		MustAdd("name", fields.NewCharField(fields.CharConfig{}, fields.Label("Full name"))).
		MustAdd("age", fields.NewIntegerField(fields.IntegerConfig{MinValue: fields.Int64(18)})).
		MustAdd("plan", fields.NewChoiceField([]fields.Choice{
			fields.NewChoice("basic", "Basic"),
			fields.Group("Paid", fields.NewChoice("pro", "Pro")),
		}, fields.Required(false))).
		MustAdd("tags", fields.NewMultipleChoiceField([]fields.Choice{
			fields.NewChoice("a", "A"),
			fields.NewChoice("b", "B"),
		})).
		MustAdd("agree", fields.NewBooleanField()).
		MustAdd("notify", fields.NewNullBooleanField()).
		MustAdd("when", fields.NewSplitDateTimeField(fields.SplitDateTimeConfig{})).
		MustAdd("secret", fields.NewCharField(fields.CharConfig{}, fields.Widget("password"))).
		MustAdd("bio", fields.NewCharField(fields.CharConfig{}, fields.Widget("textarea"), fields.Required(false))).
		MustAdd("token", fields.NewCharField(fields.CharConfig{}, fields.Hidden(), fields.Initial("abc")))
}

func TestCollect(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "12", "36", "2024-01-02", "10:30"},
		passwords: []string{"s3cret"},
		textAreas: []string{"Hello"},
		selectIdx: []int{2, 1},
		multiIdx:  [][]int{{0, 1}},
		confirm:   []bool{false, true},
	}

	got, err := prompt.Collect(context.Background(), signupForm(), driver)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := map[string]any{
		"name":   "Ada",
		"age":    int64(36),
		"plan":   "pro",
		"tags":   []string{"a", "b"},
		"agree":  true,
		"notify": true,
		"when":   civil.DateTime{Date: civil.Date{Year: 2024, Month: 1, Day: 2}, Time: civil.Time{Hour: 10, Minute: 30}},
		"secret": "s3cret",
		"bio":    "Hello",
		"token":  "abc",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}

	wantInfos := []string{
		"Ensure this value is greater than or equal to 18.",
		"This field is required.",
	}
	if diff := cmp.Diff(wantInfos, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}

	wantMessages := []string{
		"Full name", "age", "age", "plan", "tags", "agree", "agree", "notify",
		"when (1/2)", "when (2/2)", "secret", "bio",
	}
	if diff := cmp.Diff(wantMessages, driver.messages); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}

	wantOptions := []string{"---------", "Basic", "Pro"}
	if diff := cmp.Diff(wantOptions, driver.selects[0].Options); diff != "" {
		t.Fatalf("plan options mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectGivesUpAfterMaxAttempts(t *testing.T) {
	form := forms.New().MustAdd("age", fields.NewIntegerField(fields.IntegerConfig{}))
	driver := &stubDriver{inputs: []string{"x", "y"}}

	_, err := prompt.Collect(context.Background(), form, driver, prompt.WithMaxAttempts(2))
	if !fields.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff([]string{"Enter a whole number."}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectErrors(t *testing.T) {
	form := forms.New().MustAdd("name", fields.NewCharField(fields.CharConfig{}))
	_, err := prompt.Collect(context.Background(), form, &stubDriver{err: prompt.ErrAborted})
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	upload := forms.New().MustAdd("avatar", fields.NewFileField(fields.FileConfig{}))
	if _, err := prompt.Collect(context.Background(), upload, &stubDriver{}); !errors.Is(err, prompt.ErrUnsupportedField) {
		t.Fatalf("expected ErrUnsupportedField, got %v", err)
	}

	if _, err := prompt.Collect(context.Background(), nil, &stubDriver{}); err == nil {
		t.Fatalf("expected error for nil form")
	}
}

func TestCollectRunsFormHooks(t *testing.T) {
	form := forms.New(forms.WithCleanHook(func(_ context.Context, data map[string]any) (map[string]any, error) {
		if data["password"] != data["confirm"] {
			return nil, fields.NewValidationError("Passwords do not match.")
		}
		return nil, nil
	})).
		MustAdd("password", fields.NewCharField(fields.CharConfig{})).
		MustAdd("confirm", fields.NewCharField(fields.CharConfig{}))

	_, err := prompt.Collect(context.Background(), form, &stubDriver{inputs: []string{"one", "two"}})
	var formErr *forms.FormError
	if !errors.As(err, &formErr) {
		t.Fatalf("expected *forms.FormError, got %v", err)
	}
	if diff := cmp.Diff(forms.ErrorList{"Passwords do not match."}, formErr.Mapping.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}
