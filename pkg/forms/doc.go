// Package forms groups named fields into a form, binds submitted data and
// collects per-field and form-wide errors.
//
//	form := forms.New(forms.WithName("signup")).
//		MustAdd("email", fields.NewEmailField(fields.CharConfig{})).
//		MustAdd("age", fields.NewIntegerField(fields.IntegerConfig{}, fields.Required(false)))
//
//	bound, err := form.BindRequest(r)
//	if err != nil {
//		return err
//	}
//	if err := bound.FullClean(ctx); err != nil {
//		var ferr *forms.FormError
//		if errors.As(err, &ferr) {
//			// ferr.Mapping.Fields["email"] ...
//		}
//	}
package forms
