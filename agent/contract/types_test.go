package contract

import (
	"errors"
	"testing"
)

func TestHaikuValidate(t *testing.T) {
	t.Parallel()

	valid := Haiku{
		Japanese:   []string{"a", "b", "c"},
		English:    []string{"x", "y", "z"},
		ImageNames: []string{"Mount_Fuji.jpg", "Sakura_Blossoms.jpg"},
	}

	tests := []struct {
		name   string
		mutate func(h *Haiku)
		valid  bool
	}{
		{name: "valid", mutate: func(h *Haiku) {}, valid: true},
		{name: "too few lines", mutate: func(h *Haiku) { h.Japanese = h.Japanese[:2] }},
		{name: "too many lines", mutate: func(h *Haiku) { h.Japanese = append(h.Japanese, "d") }},
		{name: "unequal translations", mutate: func(h *Haiku) { h.English = h.English[:2] }},
		{name: "blank japanese line", mutate: func(h *Haiku) { h.Japanese[1] = "  " }},
		{name: "blank english line", mutate: func(h *Haiku) { h.English[0] = "" }},
		{name: "no images", mutate: func(h *Haiku) { h.ImageNames = nil }},
		{name: "unlisted image", mutate: func(h *Haiku) { h.ImageNames = []string{"Eiffel_Tower.jpg"} }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := Haiku{
				Japanese:   append([]string(nil), valid.Japanese...),
				English:    append([]string(nil), valid.English...),
				ImageNames: append([]string(nil), valid.ImageNames...),
			}
			tt.mutate(&h)

			err := h.Validate()
			if tt.valid {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrSchemaViolation) {
				t.Fatalf("Validate() error = %v, want ErrSchemaViolation", err)
			}
		})
	}
}

func TestImagePermitted(t *testing.T) {
	t.Parallel()

	for _, name := range PermittedImageNames {
		if !ImagePermitted(name) {
			t.Fatalf("ImagePermitted(%q) = false", name)
		}
	}
	if ImagePermitted("mount_fuji.jpg") {
		t.Fatal("image names must match case exactly")
	}
	if ImagePermitted("") {
		t.Fatal("empty name must not be permitted")
	}
}
