package formats

import (
	"math"
	"strconv"
	"strings"
)

// IES layout constants.
const (
	// iesHeaderFields is the number of numeric fields that must follow TILT
	// before angle and candela data: lamp count, lumens, multiplier,
	// vertical count, horizontal count and five descriptive fields.
	iesHeaderFields = 10

	// DefaultBeamAngleDeg is used when no candela value falls below half power.
	DefaultBeamAngleDeg = 40.0

	// MinBeamAngleDeg and MaxBeamAngleDeg bound the derived beam half-angle.
	MinBeamAngleDeg = 5.0
	MaxBeamAngleDeg = 120.0

	// MinSuggestedDistance is the smallest suggested throw distance.
	MinSuggestedDistance = 10.0

	// FallbackSuggestedDistance replaces a degenerate lumen-based distance.
	FallbackSuggestedDistance = 12.0

	// lumensPerDistanceUnit converts total lamp lumens into a throw distance.
	lumensPerDistanceUnit = 80.0
)

// PhotometricType identifies the goniometer coordinate system (Type C, B or A).
type PhotometricType int

// Photometric types as numbered in LM-63.
const (
	PhotometricTypeC PhotometricType = 1
	PhotometricTypeB PhotometricType = 2
	PhotometricTypeA PhotometricType = 3
)

// String returns a human-readable photometric type name.
func (t PhotometricType) String() string {
	switch t {
	case PhotometricTypeC:
		return "Type C"
	case PhotometricTypeB:
		return "Type B"
	case PhotometricTypeA:
		return "Type A"
	default:
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// Photometry is the parsed content of a photometric description file.
// The zero value means no photometric data is available; callers fall back to defaults.
type Photometry struct {
	// Keywords holds header lines of the form "[KEY] value" found before TILT.
	Keywords map[string]string

	LampCount         float64
	LumensPerLamp     float64
	CandelaMultiplier float64

	PhotometricType PhotometricType
	UnitsType       int
	Width           float64
	Length          float64
	Height          float64

	// VerticalAngles and HorizontalAngles are in degrees, in file order.
	VerticalAngles   []float64
	HorizontalAngles []float64

	// Candela holds len(VerticalAngles)*len(HorizontalAngles) values already
	// scaled by the multiplier. Values for one horizontal plane are contiguous.
	Candela []float64

	PeakCandela       float64
	BeamAngle         float64 // half-power cone half-angle, radians
	SuggestedDistance float64
}

// Empty reports whether the parse produced no usable photometric data.
func (p *Photometry) Empty() bool {
	return p == nil || len(p.Candela) == 0
}

// CandelaAt returns the scaled candela value for a horizontal plane and vertical angle index.
// Out-of-range indices return 0.
func (p *Photometry) CandelaAt(horizontal, vertical int) float64 {
	nv := len(p.VerticalAngles)
	if horizontal < 0 || vertical < 0 || vertical >= nv || horizontal >= len(p.HorizontalAngles) {
		return 0
	}
	return p.Candela[horizontal*nv+vertical]
}

// TotalLumens returns the rated lamp output of the luminaire.
func (p *Photometry) TotalLumens() float64 {
	return p.LampCount * p.LumensPerLamp
}

// ParseIES parses IES-style photometric text.
// It never fails: text without a TILT line, with fewer than ten numeric fields
// after it, or without a complete candela block yields an empty Photometry.
func ParseIES(text string) Photometry {
	lines := strings.Split(text, "\n")

	tiltLine := -1
	keywords := make(map[string]string)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(strings.ToUpper(trimmed), "TILT") {
			tiltLine = i
			break
		}
		if key, value, ok := parseKeyword(trimmed); ok {
			keywords[key] = value
		}
	}
	if tiltLine == -1 {
		return Photometry{}
	}

	tokens := numericTokens(strings.Join(lines[tiltLine+1:], " "))
	if len(tokens) < iesHeaderFields {
		return Photometry{}
	}

	r := tokenReader{tokens: tokens}
	p := Photometry{
		LampCount:         r.next(),
		LumensPerLamp:     r.next(),
		CandelaMultiplier: r.next(),
	}
	numVertical := r.count()
	numHorizontal := r.count()
	p.PhotometricType = PhotometricType(r.next())
	p.UnitsType = int(r.next())
	p.Width = r.next()
	p.Length = r.next()
	p.Height = r.next()

	if numVertical == 0 || numHorizontal == 0 {
		return Photometry{}
	}
	// Guard the product before allocating: a partial block is as useless as none.
	remaining := r.remaining() - numVertical - numHorizontal
	if remaining < 0 || numHorizontal > remaining/numVertical {
		return Photometry{}
	}

	p.VerticalAngles = r.take(numVertical)
	p.HorizontalAngles = r.take(numHorizontal)
	raw := r.take(numVertical * numHorizontal)

	multiplier := p.CandelaMultiplier
	if multiplier == 0 {
		multiplier = 1
	}
	p.Candela = make([]float64, len(raw))
	for i, v := range raw {
		scaled := v * multiplier
		p.Candela[i] = scaled
		if scaled > p.PeakCandela {
			p.PeakCandela = scaled
		}
	}

	p.BeamAngle = beamAngle(p.Candela[:numVertical], p.VerticalAngles, p.PeakCandela)
	p.SuggestedDistance = suggestedDistance(p.LumensPerLamp, p.LampCount)
	if len(keywords) > 0 {
		p.Keywords = keywords
	}
	return p
}

// beamAngle returns the half-power half-angle in radians, scanning only the first
// horizontal plane. An angle of exactly zero is treated as missing.
func beamAngle(plane, angles []float64, peak float64) float64 {
	halfPower := peak * 0.5
	deg := DefaultBeamAngleDeg
	for i, v := range plane {
		if v < halfPower {
			deg = angles[i]
			break
		}
	}
	if deg == 0 {
		deg = DefaultBeamAngleDeg
	}
	deg = math.Max(MinBeamAngleDeg, math.Min(MaxBeamAngleDeg, deg))
	return deg * math.Pi / 180
}

func suggestedDistance(lumensPerLamp, lampCount float64) float64 {
	d := lumensPerLamp * lampCount / lumensPerDistanceUnit
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		d = FallbackSuggestedDistance
	}
	return math.Max(MinSuggestedDistance, d)
}

// parseKeyword splits a "[KEY] value" header line.
func parseKeyword(line string) (string, string, bool) {
	if !strings.HasPrefix(line, "[") {
		return "", "", false
	}
	end := strings.Index(line, "]")
	if end <= 1 {
		return "", "", false
	}
	return strings.ToUpper(line[1:end]), strings.TrimSpace(line[end+1:]), true
}

// numericTokens splits s on whitespace and keeps the finite numeric prefix of each token.
func numericTokens(s string) []float64 {
	fields := strings.Fields(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		prefix := numericPrefix(f)
		if prefix == "" {
			continue
		}
		v, err := strconv.ParseFloat(prefix, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// numericPrefix returns the longest leading decimal literal of tok,
// so "90.0," reads as 90 and "abc" reads as nothing.
func numericPrefix(tok string) string {
	i := 0
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	digits := 0
	for i < len(tok) && isDigit(tok[i]) {
		i++
		digits++
	}
	if i < len(tok) && tok[i] == '.' {
		i++
		for i < len(tok) && isDigit(tok[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(tok) && (tok[i] == 'e' || tok[i] == 'E') {
		j := i + 1
		if j < len(tok) && (tok[j] == '+' || tok[j] == '-') {
			j++
		}
		k := j
		for k < len(tok) && isDigit(tok[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	return tok[:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// tokenReader consumes numeric tokens in file order.
type tokenReader struct {
	tokens []float64
	pos    int
}

func (r *tokenReader) next() float64 {
	if r.pos >= len(r.tokens) {
		return 0
	}
	v := r.tokens[r.pos]
	r.pos++
	return v
}

// count reads a token as a non-negative element count.
func (r *tokenReader) count() int {
	v := math.Floor(r.next())
	if v <= 0 {
		return 0
	}
	if v > float64(len(r.tokens)) {
		return len(r.tokens) + 1
	}
	return int(v)
}

func (r *tokenReader) remaining() int {
	return len(r.tokens) - r.pos
}

func (r *tokenReader) take(n int) []float64 {
	end := r.pos + n
	if end > len(r.tokens) {
		end = len(r.tokens)
	}
	out := make([]float64, end-r.pos)
	copy(out, r.tokens[r.pos:end])
	r.pos = end
	return out
}
