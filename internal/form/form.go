package form

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"staffdesk/internal/emsapi"
	"staffdesk/internal/phone"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"
	"staffdesk/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

// Field names, also the JSON keys the gateway accepts.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldCountryCode = "countryCode"
	FieldPhoneNumber = "phoneNumber"
	FieldDepartment  = "department"
	FieldPosition    = "position"
	FieldSalary      = "salary"
)

var fieldNames = []string{
	FieldFirstName, FieldLastName, FieldEmail, FieldCountryCode,
	FieldPhoneNumber, FieldDepartment, FieldPosition, FieldSalary,
}

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type (
	Params struct {
		fx.In
		Logger logger.Logger
		EMS    emsapi.Service
	}

	// Factory builds per-record form controllers. Create/edit mode is fixed
	// once at construction and never re-evaluated.
	Factory interface {
		Create() *Form
		Edit(emp structs.Employee) *Form
	}

	factory struct {
		logger logger.Logger
		ems    emsapi.Service
	}

	// Field is one named entry of the form's value map.
	Field struct {
		Value   string   `json:"value"`
		Touched bool     `json:"touched"`
		Errors  []string `json:"errors,omitempty"`
	}

	Form struct {
		logger logger.Logger
		ems    emsapi.Service

		isEdit bool
		id     int64
		fields map[string]*Field
		busy   bool
	}
)

func New(p Params) Factory {
	return &factory{
		logger: p.Logger,
		ems:    p.EMS,
	}
}

func (f *factory) Create() *Form {
	return &Form{
		logger: f.logger,
		ems:    f.ems,
		fields: emptyFields(),
	}
}

func (f *factory) Edit(emp structs.Employee) *Form {
	frm := &Form{
		logger: f.logger,
		ems:    f.ems,
		isEdit: true,
		id:     emp.Id,
		fields: emptyFields(),
	}

	countryCode := "+1"
	number := emp.PhoneNumber
	if emp.CountryCode != "" {
		countryCode = emp.CountryCode
		number = strings.TrimPrefix(emp.PhoneNumber, countryCode)
	} else {
		countryCode, number = phone.Extract(emp.PhoneNumber)
	}

	frm.fields[FieldFirstName].Value = emp.FirstName
	frm.fields[FieldLastName].Value = emp.LastName
	frm.fields[FieldEmail].Value = emp.Email
	frm.fields[FieldCountryCode].Value = countryCode
	frm.fields[FieldPhoneNumber].Value = number
	frm.fields[FieldDepartment].Value = emp.Department
	frm.fields[FieldPosition].Value = emp.Position
	frm.fields[FieldSalary].Value = strconv.FormatFloat(emp.Salary, 'f', -1, 64)

	return frm
}

func emptyFields() map[string]*Field {
	fields := make(map[string]*Field, len(fieldNames))
	for _, name := range fieldNames {
		fields[name] = &Field{}
	}
	fields[FieldCountryCode].Value = "+1"
	return fields
}

func (f *Form) IsEdit() bool {
	return f.isEdit
}

// Set writes a field value, marks it touched and revalidates the whole form.
func (f *Form) Set(name, value string) error {
	field, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", structs.ErrBadRequest, name)
	}
	field.Value = value
	field.Touched = true
	f.revalidate()
	return nil
}

// Field returns a copy of the named field's current state.
func (f *Form) Field(name string) (Field, bool) {
	field, ok := f.fields[name]
	if !ok {
		return Field{}, false
	}
	return *field, true
}

// Fields returns a copy of the whole field map for rendering.
func (f *Form) Fields() map[string]Field {
	out := make(map[string]Field, len(f.fields))
	for name, field := range f.fields {
		out[name] = *field
	}
	return out
}

// PhoneHint returns the per-country input hint for the current calling code.
func (f *Form) PhoneHint() string {
	return phone.Hint(f.fields[FieldCountryCode].Value)
}

func (f *Form) Valid() bool {
	f.revalidate()
	for _, field := range f.fields {
		if len(field.Errors) > 0 {
			return false
		}
	}
	return true
}

// revalidate recomputes every field's error list from current values.
// Validation is a pure function of the values, recomputed wholesale.
func (f *Form) revalidate() {
	for name, field := range f.fields {
		field.Errors = validateField(name, field.Value)
	}
}

func validateField(name, value string) []string {
	var errs []string
	trimmed := strings.TrimSpace(value)

	switch name {
	case FieldFirstName, FieldLastName:
		if trimmed == "" {
			errs = append(errs, "required")
		} else if n := utf8.RuneCountInString(trimmed); n < 2 || n > 50 {
			errs = append(errs, "must be 2-50 characters")
		}
	case FieldEmail:
		if trimmed == "" {
			errs = append(errs, "required")
		} else if !emailShape.MatchString(trimmed) {
			errs = append(errs, "must be a valid email address")
		}
	case FieldCountryCode:
		if trimmed == "" {
			errs = append(errs, "required")
		} else if !strings.HasPrefix(trimmed, "+") {
			errs = append(errs, "must start with +")
		} else if !phone.IsKnownCode(trimmed) {
			// the dropdown only offers known codes; a stale record can
			// carry something else and must be re-picked before saving
			errs = append(errs, "unknown calling code")
		}
	case FieldPhoneNumber:
		if trimmed == "" {
			errs = append(errs, "required")
		} else if !utils.DigitsOnly(trimmed) {
			errs = append(errs, "digits only")
		} else if len(trimmed) < 8 || len(trimmed) > 15 {
			errs = append(errs, "must be 8-15 digits")
		}
	case FieldDepartment, FieldPosition:
		if trimmed == "" {
			errs = append(errs, "required")
		}
	case FieldSalary:
		if trimmed == "" {
			errs = append(errs, "required")
		} else if salary, err := strconv.ParseFloat(trimmed, 64); err != nil {
			errs = append(errs, "must be a number")
		} else if salary < 0 {
			errs = append(errs, "must be >= 0")
		}
	}
	return errs
}

// touchAll marks every field touched so validation messages render.
func (f *Form) touchAll() {
	for _, field := range f.fields {
		field.Touched = true
	}
}

// Submit validates and, when clean, creates or updates the record through the
// backend. An invalid form never reaches the network. The form stays editable
// after a backend failure; there is no automatic retry.
func (f *Form) Submit(ctx context.Context) (structs.Employee, error) {
	if f.busy {
		return structs.Employee{}, structs.ErrBusy
	}

	if !f.Valid() {
		f.touchAll()
		return structs.Employee{}, structs.ErrValidation
	}

	f.busy = true
	defer func() { f.busy = false }()

	emp := f.assemble()

	var (
		resp structs.Employee
		err  error
	)
	if f.isEdit {
		resp, err = f.ems.UpdateEmployee(ctx, f.id, emp)
	} else {
		resp, err = f.ems.CreateEmployee(ctx, emp)
	}
	if err != nil {
		f.logger.Warn(ctx, "employee submit failed",
			zap.Bool("edit", f.isEdit),
			zap.Error(err),
		)
		return structs.Employee{}, err
	}

	f.logger.Info(ctx, "employee submitted",
		zap.Bool("edit", f.isEdit),
		zap.Int64("id", resp.Id),
	)
	return resp, nil
}

// assemble builds the persisted record: the phone field is the calling code
// concatenated with the raw digits.
func (f *Form) assemble() structs.Employee {
	countryCode := strings.TrimSpace(f.fields[FieldCountryCode].Value)
	digits := strings.TrimSpace(f.fields[FieldPhoneNumber].Value)
	salary, _ := strconv.ParseFloat(strings.TrimSpace(f.fields[FieldSalary].Value), 64)

	return structs.Employee{
		Id:          f.id,
		FirstName:   strings.TrimSpace(f.fields[FieldFirstName].Value),
		LastName:    strings.TrimSpace(f.fields[FieldLastName].Value),
		Email:       strings.TrimSpace(f.fields[FieldEmail].Value),
		PhoneNumber: countryCode + digits,
		CountryCode: countryCode,
		Department:  strings.TrimSpace(f.fields[FieldDepartment].Value),
		Position:    strings.TrimSpace(f.fields[FieldPosition].Value),
		Salary:      salary,
	}
}
