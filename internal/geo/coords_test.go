package geo

import "testing"

func TestParseCoords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLat float64
		wantLon float64
		wantOK  bool
	}{
		{
			name:    "plain pair",
			input:   "48.8584,2.2945",
			wantLat: 48.8584,
			wantLon: 2.2945,
			wantOK:  true,
		},
		{
			name:    "space after comma",
			input:   "48.8584, 2.2945",
			wantLat: 48.8584,
			wantLon: 2.2945,
			wantOK:  true,
		},
		{
			name:    "leading and trailing whitespace",
			input:   "  -33.87,151.21  ",
			wantLat: -33.87,
			wantLon: 151.21,
			wantOK:  true,
		},
		{
			name:    "explicit plus signs",
			input:   "+10,+20",
			wantLat: 10,
			wantLon: 20,
			wantOK:  true,
		},
		{
			name:    "integers",
			input:   "90,-180",
			wantLat: 90,
			wantLon: -180,
			wantOK:  true,
		},
		{
			name:   "latitude out of range",
			input:  "90.5,0",
			wantOK: false,
		},
		{
			name:   "longitude out of range",
			input:  "0,181",
			wantOK: false,
		},
		{
			name:   "free text",
			input:  "Eiffel Tower",
			wantOK: false,
		},
		{
			name:   "missing longitude",
			input:  "48.8584,",
			wantOK: false,
		},
		{
			name:   "space before comma",
			input:  "48.8584 ,2.2945",
			wantOK: false,
		},
		{
			name:   "semicolon separator",
			input:  "48.8584;2.2945",
			wantOK: false,
		},
		{
			name:   "empty string",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, ok := ParseCoords(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseCoords(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if lat != tt.wantLat || lon != tt.wantLon {
				t.Errorf("ParseCoords(%q) = (%v, %v), want (%v, %v)", tt.input, lat, lon, tt.wantLat, tt.wantLon)
			}
		})
	}
}
