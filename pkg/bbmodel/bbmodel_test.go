package bbmodel

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseFile(t *testing.T) {
	doc, err := ParseFile("testdata/torch.bbmodel")
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	w, h := doc.Resolution.Size()
	if w != 64 || h != 32 {
		t.Errorf("expected resolution 64x32, got %dx%d", w, h)
	}

	if len(doc.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(doc.Elements))
	}
	if doc.Elements[0].IsItem() {
		t.Error("expected first element to be a cube")
	}
	if !doc.Elements[1].IsItem() {
		t.Error("expected second element to be an item")
	}
	if doc.Elements[1].Rotation != nil {
		t.Error("expected item rotation to be absent")
	}

	if len(doc.Outliner) != 1 || doc.Outliner[0].Kind() != OutlinerGroup {
		t.Fatalf("expected a single outliner group")
	}

	if len(doc.Animations) != 1 {
		t.Fatalf("expected 1 animation, got %d", len(doc.Animations))
	}
	if *doc.Animations[0].Name != "wave" || *doc.Animations[0].Length != 2.5 {
		t.Errorf("unexpected animation header: %s %v", *doc.Animations[0].Name, *doc.Animations[0].Length)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile("testdata/does_not_exist.bbmodel"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"resolution": `))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	const faces = `"faces": {"north": {"uv": [0,0,1,1]}, "south": {"uv": [0,0,1,1]}, "east": {"uv": [0,0,1,1]}, "west": {"uv": [0,0,1,1]}, "up": {"uv": [0,0,1,1]}, "down": {"uv": [0,0,1,1]}}`

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "missing resolution",
			doc:     `{}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "missing height",
			doc:     `{"resolution": {"width": 16}}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "element without uuid",
			doc:     `{"resolution": {"width": 16, "height": 16}, "elements": [{"name": "a", "from": [0,0,0], "to": [1,1,1], "origin": [0,0,0], ` + faces + `}]}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "element without from",
			doc:     `{"resolution": {"width": 16, "height": 16}, "elements": [{"uuid": "x", "name": "a", "to": [1,1,1], "origin": [0,0,0], ` + faces + `}]}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "short to vector",
			doc:     `{"resolution": {"width": 16, "height": 16}, "elements": [{"uuid": "x", "name": "a", "from": [0,0,0], "to": [1,1], "origin": [0,0,0], ` + faces + `}]}`,
			wantErr: ErrInvalidField,
		},
		{
			name:    "cube without faces",
			doc:     `{"resolution": {"width": 16, "height": 16}, "elements": [{"uuid": "x", "name": "a", "from": [0,0,0], "to": [1,1,1], "origin": [0,0,0]}]}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "short uv",
			doc:     `{"resolution": {"width": 16, "height": 16}, "elements": [{"uuid": "x", "name": "a", "from": [0,0,0], "to": [1,1,1], "origin": [0,0,0], "faces": {"north": {"uv": [0,0,1]}}}]}`,
			wantErr: ErrInvalidField,
		},
		{
			name:    "item without faces",
			doc:     `{"resolution": {"width": 16, "height": 16}, "elements": [{"uuid": "x", "name": "item_a", "from": [0,0,0], "to": [1,1,1], "origin": [0,0,0]}]}`,
			wantErr: nil,
		},
		{
			name:    "animation without length",
			doc:     `{"resolution": {"width": 16, "height": 16}, "animations": [{"name": "idle"}]}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "keyframe without time",
			doc:     `{"resolution": {"width": 16, "height": 16}, "animations": [{"name": "idle", "length": 1, "animators": {"b": {"keyframes": [{"channel": "scale"}]}}}]}`,
			wantErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("failed to decode document: %v", err)
			}
			err = doc.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestItemDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		isItem bool
		want   string
	}{
		{"item_torch", true, "torch"},
		{"item_item_torch", true, "item_torch"},
		{"torch", false, "torch"},
		{"my_item_torch", false, "my_torch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsItemName(tt.name); got != tt.isItem {
				t.Errorf("IsItemName(%q) = %v, want %v", tt.name, got, tt.isItem)
			}
			if tt.isItem {
				if got := ItemDisplayName(tt.name); got != tt.want {
					t.Errorf("ItemDisplayName(%q) = %q, want %q", tt.name, got, tt.want)
				}
			}
		})
	}
}

func TestParse_DoesNotValidate(t *testing.T) {
	doc, err := Parse([]byte(`{"elements": [{"name": "a"}]}`))
	if err != nil {
		t.Fatalf("Parse should only decode, got %v", err)
	}
	if err := doc.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField from Validate, got %v", err)
	}
}
