// Package formdef loads form definitions from YAML or JSON and builds them
// into forms.
//
//	forms:
//	  signup:
//	    fields:
//	      - name: email
//	        type: email
//	        maxLength: 40
//	      - name: age
//	        type: integer
//	        required: false
//	        minValue: 18
//
// Definitions are validated before anything is built; errors name the form
// and the field at fault.
package formdef
