package form

import (
	"context"
	"errors"
	"testing"

	"staffdesk/internal/emsapi"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"
)

type stubEMS struct {
	emsapi.Service

	createCalls int
	updateCalls int
	lastPayload structs.Employee
	lastID      int64
	err         error
}

func (s *stubEMS) CreateEmployee(_ context.Context, emp structs.Employee) (structs.Employee, error) {
	s.createCalls++
	s.lastPayload = emp
	if s.err != nil {
		return structs.Employee{}, s.err
	}
	emp.Id = 1
	return emp, nil
}

func (s *stubEMS) UpdateEmployee(_ context.Context, id int64, emp structs.Employee) (structs.Employee, error) {
	s.updateCalls++
	s.lastID = id
	s.lastPayload = emp
	if s.err != nil {
		return structs.Employee{}, s.err
	}
	emp.Id = id
	return emp, nil
}

func newFactory(ems emsapi.Service) Factory {
	return New(Params{Logger: logger.New("error"), EMS: ems})
}

func fillValid(frm *Form) {
	frm.Set(FieldFirstName, "Jane")
	frm.Set(FieldLastName, "Doe")
	frm.Set(FieldEmail, "jane.doe@example.com")
	frm.Set(FieldCountryCode, "+91")
	frm.Set(FieldPhoneNumber, "9876543210")
	frm.Set(FieldDepartment, "Engineering")
	frm.Set(FieldPosition, "Developer")
	frm.Set(FieldSalary, "75000")
}

func TestSubmitCreateConcatenatesPhone(t *testing.T) {
	ems := &stubEMS{}
	frm := newFactory(ems).Create()
	fillValid(frm)

	emp, err := frm.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ems.createCalls != 1 {
		t.Fatalf("create calls = %d, want 1", ems.createCalls)
	}
	if ems.lastPayload.PhoneNumber != "+919876543210" {
		t.Errorf("phone = %q, want +919876543210", ems.lastPayload.PhoneNumber)
	}
	if ems.lastPayload.CountryCode != "+91" {
		t.Errorf("country code = %q, want +91", ems.lastPayload.CountryCode)
	}
	if emp.Id != 1 {
		t.Errorf("id = %d, want 1", emp.Id)
	}
}

func TestSubmitInvalidNeverReachesNetwork(t *testing.T) {
	ems := &stubEMS{}
	frm := newFactory(ems).Create()
	fillValid(frm)
	frm.Set(FieldSalary, "-100")

	_, err := frm.Submit(context.Background())
	if !errors.Is(err, structs.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if ems.createCalls != 0 {
		t.Errorf("create calls = %d, want 0", ems.createCalls)
	}

	for name, field := range frm.Fields() {
		if !field.Touched {
			t.Errorf("field %s not marked touched after rejected submit", name)
		}
	}
}

func TestSubmitEmptyFormTouchesEverything(t *testing.T) {
	ems := &stubEMS{}
	frm := newFactory(ems).Create()

	_, err := frm.Submit(context.Background())
	if !errors.Is(err, structs.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if ems.createCalls != 0 {
		t.Errorf("create calls = %d, want 0", ems.createCalls)
	}
}

func TestEditPrefillExtractsCountryCode(t *testing.T) {
	ems := &stubEMS{}
	frm := newFactory(ems).Edit(structs.Employee{
		Id:          7,
		FirstName:   "John",
		LastName:    "Smith",
		Email:       "john@example.com",
		PhoneNumber: "+14155551234",
		Department:  "Sales",
		Position:    "Manager",
		Salary:      90000,
	})

	if !frm.IsEdit() {
		t.Fatal("expected edit mode")
	}
	code, _ := frm.Field(FieldCountryCode)
	number, _ := frm.Field(FieldPhoneNumber)
	if code.Value != "+1" || number.Value != "4155551234" {
		t.Fatalf("prefill = (%q, %q), want (+1, 4155551234)", code.Value, number.Value)
	}

	if _, err := frm.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ems.updateCalls != 1 || ems.lastID != 7 {
		t.Errorf("update calls = %d id = %d, want 1 and 7", ems.updateCalls, ems.lastID)
	}
	if ems.lastPayload.PhoneNumber != "+14155551234" {
		t.Errorf("phone = %q, want +14155551234", ems.lastPayload.PhoneNumber)
	}
}

func TestEditPrefillPrefersStoredCode(t *testing.T) {
	frm := newFactory(&stubEMS{}).Edit(structs.Employee{
		Id:          3,
		PhoneNumber: "+447123456789",
		CountryCode: "+44",
	})

	code, _ := frm.Field(FieldCountryCode)
	number, _ := frm.Field(FieldPhoneNumber)
	if code.Value != "+44" || number.Value != "7123456789" {
		t.Errorf("prefill = (%q, %q), want (+44, 7123456789)", code.Value, number.Value)
	}
}

func TestSubmitBackendFailureLeavesFormEditable(t *testing.T) {
	ems := &stubEMS{err: errors.New("boom")}
	frm := newFactory(ems).Create()
	fillValid(frm)

	if _, err := frm.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	// no automatic retry; a manual resubmit goes out again
	ems.err = nil
	if _, err := frm.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if ems.createCalls != 2 {
		t.Errorf("create calls = %d, want 2", ems.createCalls)
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{name: "first name too short", field: FieldFirstName, value: "J", wantErr: true},
		{name: "first name ok", field: FieldFirstName, value: "Jo", wantErr: false},
		{name: "last name empty", field: FieldLastName, value: "", wantErr: true},
		{name: "bad email", field: FieldEmail, value: "not-an-email", wantErr: true},
		{name: "good email", field: FieldEmail, value: "a@b.co", wantErr: false},
		{name: "phone with letters", field: FieldPhoneNumber, value: "12345abc", wantErr: true},
		{name: "phone too short", field: FieldPhoneNumber, value: "1234567", wantErr: true},
		{name: "phone 15 digits", field: FieldPhoneNumber, value: "123456789012345", wantErr: false},
		{name: "phone 16 digits", field: FieldPhoneNumber, value: "1234567890123456", wantErr: true},
		{name: "code missing plus", field: FieldCountryCode, value: "44", wantErr: true},
		{name: "code not in dropdown", field: FieldCountryCode, value: "+999", wantErr: true},
		{name: "code known", field: FieldCountryCode, value: "+971", wantErr: false},
		{name: "department empty", field: FieldDepartment, value: " ", wantErr: true},
		{name: "salary negative", field: FieldSalary, value: "-1", wantErr: true},
		{name: "salary zero", field: FieldSalary, value: "0", wantErr: false},
		{name: "salary not a number", field: FieldSalary, value: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateField(tt.field, tt.value)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("validateField(%s, %q) errors = %v, wantErr %v",
					tt.field, tt.value, errs, tt.wantErr)
			}
		})
	}
}
