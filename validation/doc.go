// Package validation provides ready-made request validators for routekit
// routes.
//
// Struct[T] validates with go-playground/validator struct tags and exposes
// Parse, so any route slot accepts it directly:
//
//	type CreateUser struct {
//	    Email string `json:"email" validate:"required,email"`
//	    Age   int    `json:"age" validate:"min=18"`
//	}
//
//	route.New(route.POST, "/users", route.WithBody(validation.Struct[CreateUser]()))
//
// Rules[T] covers checks that do not fit in tags:
//
//	validation.Rules(func(v *validation.Validator, p UserParams) {
//	    v.RequiredUUID("id", p.ID)
//	})
//
// Both accept a T, a *T, or a map decoded into T by json field names, and
// fail with an INVALID_INPUT error whose "fields" detail lists every
// FieldError.
package validation
