package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"  ", "", false},
		{"081234567890", "+6281234567890", false},
		{"+62 812-3456-7890", "+6281234567890", false},
		{"12", "", true},
		{"bukan nomor", "", true},
	}

	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if tc.wantErr {
			if err != ErrInvalidPhone {
				t.Errorf("Normalize(%q): expected ErrInvalidPhone, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Normalize(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Normalize(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
