package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-02-01"); !ok {
		t.Error("IsValidDate(\"2026-02-01\") = false, want true")
	}
	invalid := []string{"2026-13-01", "01-02-2026", "2026/02/01", "not-a-date", ""}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidMatricule(t *testing.T) {
	valid := []string{"EMP-001", "ABC123", "m-42x"}
	invalid := []string{"ab", "EMP 001", "emp_001", "", "very-long-matricule-over-limit"}
	for _, m := range valid {
		if !IsValidMatricule(m) {
			t.Errorf("IsValidMatricule(%q) = false, want true", m)
		}
	}
	for _, m := range invalid {
		if IsValidMatricule(m) {
			t.Errorf("IsValidMatricule(%q) = true, want false", m)
		}
	}
}

func TestIsValidCIN(t *testing.T) {
	valid := []string{"AB1234", "K4042", "12345678"}
	invalid := []string{"ab", "AB 1234", "AB-1234", ""}
	for _, c := range valid {
		if !IsValidCIN(c) {
			t.Errorf("IsValidCIN(%q) = false, want true", c)
		}
	}
	for _, c := range invalid {
		if IsValidCIN(c) {
			t.Errorf("IsValidCIN(%q) = true, want false", c)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+33612345678", "0612345678", "06 12 34 56 78", "06-12-34-56-78"}
	invalid := []string{"1234", "phone", "", "+123456789012345678"}
	for _, p := range valid {
		if !IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", p)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2026-01-15T10:30:00Z", "2026-01-15T10:30:00+02:00"}
	invalid := []string{"2026-01-15", "10:30:00", ""}
	for _, d := range valid {
		if _, ok := IsValidDateTime(d); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDateTime(d); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", d)
		}
	}
}
