package handlers

import "testing"

func validCreateRequest() createPropertyRequest {
	return createPropertyRequest{
		Title:       "Sea View Apartment",
		Description: "Two bedroom apartment near the coast",
		Price:       8500000,
		Address:     "12 Shore Road",
		City:        "Antalya",
		Country:     "Turkey",
	}
}

func TestValidateCreatePropertyAcceptsValidPayload(t *testing.T) {
	if field := validateCreateProperty(validCreateRequest()); field != "" {
		t.Fatalf("expected valid payload, got missing field %q", field)
	}
}

func TestValidateCreatePropertyNamesMissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*createPropertyRequest)
		want   string
	}{
		{"title", func(r *createPropertyRequest) { r.Title = "" }, "title"},
		{"description", func(r *createPropertyRequest) { r.Description = "  " }, "description"},
		{"price", func(r *createPropertyRequest) { r.Price = 0 }, "price"},
		{"address", func(r *createPropertyRequest) { r.Address = "" }, "address"},
		{"city", func(r *createPropertyRequest) { r.City = "" }, "city"},
		{"country", func(r *createPropertyRequest) { r.Country = "" }, "country"},
	}

	for _, tt := range tests {
		req := validCreateRequest()
		tt.mutate(&req)
		if got := validateCreateProperty(req); got != tt.want {
			t.Fatalf("%s: expected missing field %q, got %q", tt.name, tt.want, got)
		}
	}
}
