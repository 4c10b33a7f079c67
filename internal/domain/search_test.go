package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestSearchInput_Params(t *testing.T) {
	tests := []struct {
		name  string
		input SearchInput
		want  Params
	}{
		{
			name: "all fields",
			input: SearchInput{
				Query:        "Pied Piper",
				Location:     "Tokyo,Japan",
				SearchEngine: "google.co.jp",
				Limit:        IntPtr(5),
				Offset:       IntPtr(10),
				TBM:          ImageSearch,
				Device:       Desktop,
				Timeframe:    "w",
				GL:           "JP",
				LR:           "lang_en|lang_ja",
				HL:           "ja",
				Latitude:     "35.652832",
				Longitude:    "139.839478",
			},
			want: Params{
				{"q", "Pied Piper"},
				{"location", "Tokyo,Japan"},
				{"search_engine", "google.co.jp"},
				{"num", "5"},
				{"start", "10"},
				{"tbm", "isch"},
				{"device", "desktop"},
				{"timeframe", "w"},
				{"gl", "JP"},
				{"lr", "lang_en|lang_ja"},
				{"hl", "ja"},
				{"lat", "35.652832"},
				{"lng", "139.839478"},
			},
		},
		{
			name:  "query only",
			input: SearchInput{Query: "Pied Piper"},
			want:  Params{{"q", "Pied Piper"}},
		},
		{
			name:  "zero offset is present",
			input: SearchInput{Query: "go", Offset: IntPtr(0)},
			want:  Params{{"q", "go"}, {"start", "0"}},
		},
		{
			name:  "enums only when set",
			input: SearchInput{Query: "go", TBM: ShoppingSearch, Device: Mobile},
			want:  Params{{"q", "go"}, {"tbm", "shop"}, {"device", "mobile"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Params()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Params() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchInput_ParamsNoEmptyValues(t *testing.T) {
	in := SearchInput{Query: "q", Location: "", GL: "US"}
	for _, p := range in.Params() {
		if p.Value == "" {
			t.Errorf("param %q emitted with empty value", p.Key)
		}
	}
	if _, ok := in.Params().Get("location"); ok {
		t.Error("location should not be emitted")
	}
}

func TestSearchInput_ParamsDeterministic(t *testing.T) {
	in := SearchInput{Query: "Pied Piper", Limit: IntPtr(5), TBM: VideoSearch, HL: "en"}

	first := in.Params()
	for i := 0; i < 10; i++ {
		if got := in.Params(); !reflect.DeepEqual(got, first) {
			t.Fatalf("Params() run %d = %v, want %v", i, got, first)
		}
	}
}

func TestParams_Encode(t *testing.T) {
	p := SearchInput{
		Query:  "Pied Piper",
		LR:     "lang_en|lang_ja",
		Device: Mobile,
	}.Params()

	want := "q=Pied+Piper&device=mobile&lr=lang_en%7Clang_ja"
	if got := p.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	if got := p.Values().Get("lr"); got != "lang_en|lang_ja" {
		t.Errorf("Values().Get(lr) = %q", got)
	}
}

func TestSearchInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   SearchInput
		wantErr error
	}{
		{"ok", SearchInput{Query: "go"}, nil},
		{"empty", SearchInput{}, ErrEmptyQuery},
		{"whitespace", SearchInput{Query: "  "}, ErrEmptyQuery},
		{"limit min", SearchInput{Query: "go", Limit: IntPtr(1)}, nil},
		{"limit max", SearchInput{Query: "go", Limit: IntPtr(100)}, nil},
		{"limit zero", SearchInput{Query: "go", Limit: IntPtr(0)}, ErrInvalidLimit},
		{"limit too big", SearchInput{Query: "go", Limit: IntPtr(101)}, ErrInvalidLimit},
		{"offset zero", SearchInput{Query: "go", Offset: IntPtr(0)}, nil},
		{"offset negative", SearchInput{Query: "go", Offset: IntPtr(-1)}, ErrInvalidOffset},
		{"unknown tbm", SearchInput{Query: "go", TBM: TBM(42)}, ErrInvalidTBM},
		{"unknown device", SearchInput{Query: "go", Device: Device(7)}, ErrInvalidDevice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTBM(t *testing.T) {
	for _, tbm := range []TBM{ImageSearch, VideoSearch, MapsSearch, NewsSearch, ShoppingSearch} {
		got, err := ParseTBM(tbm.Code())
		if err != nil || got != tbm {
			t.Errorf("ParseTBM(%q) = %v, %v; want %v", tbm.Code(), got, err, tbm)
		}
	}

	if _, err := ParseTBM("image"); !errors.Is(err, ErrInvalidTBM) {
		t.Errorf("ParseTBM(image) error = %v, want ErrInvalidTBM", err)
	}
	if TBMNone.Code() != "" {
		t.Errorf("TBMNone.Code() = %q, want empty", TBMNone.Code())
	}
	if ImageSearch.String() != "image" {
		t.Errorf("ImageSearch.String() = %q", ImageSearch.String())
	}
}

func TestParseDevice(t *testing.T) {
	tests := []struct {
		code    string
		want    Device
		wantErr error
	}{
		{"desktop", Desktop, nil},
		{"mobile", Mobile, nil},
		{"tablet", DeviceNone, ErrInvalidDevice},
		{"", DeviceNone, ErrInvalidDevice},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseDevice(tt.code)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseDevice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDevice() = %v, want %v", got, tt.want)
			}
		})
	}
}
