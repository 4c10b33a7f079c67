package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	MinLimit = 1
	MaxLimit = 100
)

// TBM - тип поиска Google. Нулевое значение означает обычный веб-поиск.
type TBM int

const (
	TBMNone TBM = iota
	ImageSearch
	VideoSearch
	MapsSearch
	NewsSearch
	ShoppingSearch
)

var tbmCodes = map[TBM]string{
	ImageSearch:    "isch",
	VideoSearch:    "vid",
	MapsSearch:     "lcl",
	NewsSearch:     "nws",
	ShoppingSearch: "shop",
}

var tbmNames = map[TBM]string{
	TBMNone:        "none",
	ImageSearch:    "image",
	VideoSearch:    "video",
	MapsSearch:     "maps",
	NewsSearch:     "news",
	ShoppingSearch: "shopping",
}

// Code - код для запроса; "" для TBMNone и неизвестных значений.
func (t TBM) Code() string { return tbmCodes[t] }

func (t TBM) String() string {
	if name, ok := tbmNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TBM(%d)", int(t))
}

func ParseTBM(code string) (TBM, error) {
	for t, c := range tbmCodes {
		if c == code {
			return t, nil
		}
	}
	return TBMNone, fmt.Errorf("%w: %q", ErrInvalidTBM, code)
}

// Device - устройство, от имени которого идет поиск.
type Device int

const (
	DeviceNone Device = iota
	Desktop
	Mobile
)

var deviceCodes = map[Device]string{
	Desktop: "desktop",
	Mobile:  "mobile",
}

func (d Device) Code() string { return deviceCodes[d] }

func (d Device) String() string {
	if code, ok := deviceCodes[d]; ok {
		return code
	}
	if d == DeviceNone {
		return "none"
	}
	return fmt.Sprintf("Device(%d)", int(d))
}

func ParseDevice(code string) (Device, error) {
	for d, c := range deviceCodes {
		if c == code {
			return d, nil
		}
	}
	return DeviceNone, fmt.Errorf("%w: %q", ErrInvalidDevice, code)
}

// SearchInput - параметры одного запроса к /search.
// Пустая строка, nil и нулевой enum означают "не задано".
type SearchInput struct {
	Query        string
	Location     string
	SearchEngine string
	Limit        *int
	Offset       *int
	TBM          TBM
	Device       Device
	Timeframe    string
	GL           string
	LR           string
	HL           string
	Latitude     string
	Longitude    string
}

// Validate проверяет то, чего не проверяет кодирование: запрос не пустой,
// limit в [MinLimit, MaxLimit], offset неотрицательный.
func (in SearchInput) Validate() error {
	if strings.TrimSpace(in.Query) == "" {
		return ErrEmptyQuery
	}
	if in.Limit != nil && (*in.Limit < MinLimit || *in.Limit > MaxLimit) {
		return ErrInvalidLimit
	}
	if in.Offset != nil && *in.Offset < 0 {
		return ErrInvalidOffset
	}
	if in.TBM != TBMNone && in.TBM.Code() == "" {
		return ErrInvalidTBM
	}
	if in.Device != DeviceNone && in.Device.Code() == "" {
		return ErrInvalidDevice
	}
	return nil
}

// Params кодирует ввод в параметры /search. Попадают только заданные поля,
// порядок ключей всегда один и тот же.
func (in SearchInput) Params() Params {
	p := make(Params, 0, 13)
	p = p.addString("q", in.Query)
	p = p.addString("location", in.Location)
	p = p.addString("search_engine", in.SearchEngine)
	p = p.addInt("num", in.Limit)
	p = p.addInt("start", in.Offset)
	p = p.addString("tbm", in.TBM.Code())
	p = p.addString("device", in.Device.Code())
	p = p.addString("timeframe", in.Timeframe)
	p = p.addString("gl", in.GL)
	p = p.addString("lr", in.LR)
	p = p.addString("hl", in.HL)
	p = p.addString("lat", in.Latitude)
	p = p.addString("lng", in.Longitude)
	return p
}

type Param struct {
	Key   string
	Value string
}

// Params - упорядоченный набор query-параметров.
type Params []Param

func (p Params) addString(key, value string) Params {
	if value == "" {
		return p
	}
	return append(p, Param{Key: key, Value: value})
}

func (p Params) addInt(key string, value *int) Params {
	if value == nil {
		return p
	}
	return append(p, Param{Key: key, Value: strconv.Itoa(*value)})
}

func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Encode собирает query string в порядке добавления; url.Values отсортировал бы ключи.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, kv := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}

func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for _, kv := range p {
		v.Add(kv.Key, kv.Value)
	}
	return v
}

// IntPtr - для необязательных числовых полей SearchInput.
func IntPtr(v int) *int { return &v }
