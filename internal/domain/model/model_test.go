package model

import "testing"

func TestGenderValues(t *testing.T) {
	cases := []struct {
		name  string
		got   Gender
		value string
		valid bool
	}{
		{"male", GenderMale, "MALE", true},
		{"female", GenderFemale, "FEMALE", true},
		{"lowercase", Gender("male"), "male", false},
		{"empty", Gender(""), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if tc.got.Valid() != tc.valid {
				t.Fatalf("expected valid=%v for %q", tc.valid, tc.got)
			}
		})
	}
}

func TestCustomerHasProfileImage(t *testing.T) {
	empty := ""
	id := "img"
	cases := []struct {
		name string
		ref  *string
		want bool
	}{
		{"nil", nil, false},
		{"blank", &empty, false},
		{"set", &id, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Customer{ProfileImageID: tc.ref}
			if got := c.HasProfileImage(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
