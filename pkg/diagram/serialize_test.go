package diagram

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/isostack/pkg/errors"
)

func TestSerializeRoundTrip(t *testing.T) {
	list := []Component{
		{
			ID:               "shape-1",
			Shape:            "layer4x3",
			Position:         "center",
			AttachmentPoints: []AttachmentPoint{{Name: "top", X: 100, Y: 58}, {Name: "bottom", X: 100, Y: 78}},
			AbsolutePosition: Point{X: 400, Y: 300},
		},
		{
			ID:               "shape-2",
			Shape:            "cube",
			Position:         "top-left",
			RelativeToID:     Ref("shape-1"),
			Attached2DShapes: []Attached2DShape{{Name: "process", AttachedTo: "top"}},
			AbsolutePosition: Point{X: 375.5, Y: 218},
			Cut:              true,
		},
	}

	data, err := Serialize(list)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Errorf("Serialize() should indent with two spaces:\n%s", data)
	}
	if !strings.Contains(string(data), `"relativeToId": null`) {
		t.Errorf("root should serialize a null reference:\n%s", data)
	}

	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if diff := cmp.Diff(list, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeEmpty(t *testing.T) {
	data, err := Serialize(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("Serialize(nil) = %s, want []", data)
	}
	list, err := Deserialize(data)
	if err != nil || len(list) != 0 {
		t.Errorf("Deserialize([]) = %v, %v", list, err)
	}
}

func TestDeserializeErrors(t *testing.T) {
	const valid = `{"id":"a","shape":"cube","position":"center","relativeToId":null,` +
		`"attached2DShapes":[],"attachmentPoints":[],"absolutePosition":{"x":0,"y":0}}`

	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"not json", `[{"id":`, errors.ErrCodeInvalidFormat},
		{"trailing data", `[] []`, errors.ErrCodeInvalidFormat},
		{"not an array", `"diagram"`, errors.ErrCodeInvalidStructure},
		{"null", `null`, errors.ErrCodeInvalidStructure},
		{"missing id", strings.Replace(valid, `"id":"a",`, "", 1), errors.ErrCodeInvalidStructure},
		{"empty shape", strings.Replace(valid, `"shape":"cube"`, `"shape":""`, 1), errors.ErrCodeInvalidStructure},
		{"numeric position", strings.Replace(valid, `"position":"center"`, `"position":3`, 1), errors.ErrCodeInvalidStructure},
		{"missing decorations", strings.Replace(valid, `"attached2DShapes":[],`, "", 1), errors.ErrCodeInvalidStructure},
		{"bad decoration", strings.Replace(valid, `"attached2DShapes":[]`, `"attached2DShapes":[{"name":"p"}]`, 1), errors.ErrCodeInvalidStructure},
		{"bad point", strings.Replace(valid, `"attachmentPoints":[]`, `"attachmentPoints":[{"name":"top","x":"1","y":2}]`, 1), errors.ErrCodeInvalidStructure},
		{"missing absolute", strings.Replace(valid, `,"absolutePosition":{"x":0,"y":0}`, "", 1), errors.ErrCodeInvalidStructure},
		{"bad reference", strings.Replace(valid, `"relativeToId":null`, `"relativeToId":7`, 1), errors.ErrCodeInvalidStructure},
		{"bad cut", strings.Replace(valid, `}}`, `},"cut":"yes"}`, 1), errors.ErrCodeInvalidStructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if strings.HasPrefix(data, "{\"id\"") || strings.HasPrefix(data, "{\"shape\"") {
				data = "[" + data + "]"
			}
			list, err := Deserialize([]byte(data))
			if err == nil {
				t.Fatalf("Deserialize() = %v, want error", list)
			}
			if list != nil {
				t.Error("Deserialize() returned a partial list")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestDeserializeAcceptsMissingOptionalFields(t *testing.T) {
	data := `[{"id":"a","shape":"cube","position":"center",` +
		`"attached2DShapes":[],"attachmentPoints":[],"absolutePosition":{"x":1,"y":2}}]`
	list, err := Deserialize([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if !list[0].IsRoot() || list[0].Cut {
		t.Errorf("got %+v, want uncut root", list[0])
	}
}
