package diagram

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		token   string
		want    Position
		contact string
		wantErr bool
	}{
		{token: "center", want: Center},
		{token: "top", want: Position{Face: FaceTop}, contact: "bottom"},
		{token: "bottom", want: Position{Face: FaceBottom}, contact: "top"},
		{token: "front-left", want: Position{Face: FaceFrontLeft}, contact: "back-right"},
		{token: "front-right", want: Position{Face: FaceFrontRight}, contact: "back-left"},
		{token: "back-left", want: Position{Face: FaceBackLeft}, contact: "front-right"},
		{token: "back-right", want: Position{Face: FaceBackRight}, contact: "front-left"},
		{token: "top-left", want: Position{Face: FaceTop, Anchor: "left"}, contact: "bottom"},
		{token: "front-left-back-right", want: Position{Face: FaceFrontLeft, Anchor: "back-right"}, contact: "back-right"},
		{token: "front-left-rack-unit-3", want: Position{Face: FaceFrontLeft, Anchor: "rack-unit-3"}, contact: "back-right"},
		{token: "front", wantErr: true},
		{token: "center-left", wantErr: true},
		{token: "top-", wantErr: true},
		{token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParsePosition(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePosition(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParsePosition(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
			if got.String() != tt.token {
				t.Errorf("String() = %q, want %q", got.String(), tt.token)
			}
			if got.ReferenceAnchor() != tt.token {
				t.Errorf("ReferenceAnchor() = %q, want %q", got.ReferenceAnchor(), tt.token)
			}
			contact, ok := got.ContactAnchor()
			if ok != (tt.contact != "") || contact != tt.contact {
				t.Errorf("ContactAnchor() = %q, %v, want %q", contact, ok, tt.contact)
			}
		})
	}
}

func TestIsFace(t *testing.T) {
	if !IsFace("front-right") {
		t.Error("front-right should be a face")
	}
	if IsFace("front-right-x") || IsFace("screen") {
		t.Error("compound tokens and anchors are not faces")
	}
}
