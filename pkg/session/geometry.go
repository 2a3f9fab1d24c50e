package session

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/tabpad/tabpad-cli/pkg/models"
)

// EncodeGeometry renders g as the opaque geometry blob.
func EncodeGeometry(g models.Geometry) string {
	raw := "{}"
	raw, _ = sjson.Set(raw, "width", g.Width)
	raw, _ = sjson.Set(raw, "height", g.Height)
	raw, _ = sjson.Set(raw, "zoom", g.Zoom)
	return raw
}

// DecodeGeometry reads a geometry blob. Missing or malformed fields keep
// the values in def.
func DecodeGeometry(raw string, def models.Geometry) models.Geometry {
	if raw == "" || !gjson.Valid(raw) {
		return def
	}
	g := def
	r := gjson.Parse(raw)
	if v := r.Get("width"); v.Type == gjson.Number {
		g.Width = int(v.Int())
	}
	if v := r.Get("height"); v.Type == gjson.Number {
		g.Height = int(v.Int())
	}
	if v := r.Get("zoom"); v.Type == gjson.Number {
		g.Zoom = int(v.Int())
	}
	return g
}
