package jsontools

import (
	"math"
	"math/rand"

	"github.com/mehditeymorian/textkit/internal/jsondom"
	"github.com/mehditeymorian/textkit/internal/unicodex"
)

// GeneratorConfig bounds the random document builder.
type GeneratorConfig struct {
	// Depth is the number of tree levels, at least 1.
	Depth int
	// AvgChildren is the mean child count per container; the actual count
	// is sampled uniformly from [1, 2*AvgChildren].
	AvgChildren int
	// AvgStringLength is the mean length of generated strings; the actual
	// length is sampled uniformly from [avg/2, avg*3/2].
	AvgStringLength int
	// NameCharRange samples object member names.
	NameCharRange unicodex.CharRange
	// ValueCharRange samples string values.
	ValueCharRange unicodex.CharRange
	// Seed fixes the random sequence; 0 leaves the source unseeded.
	Seed int64
}

// DefaultGeneratorConfig mirrors the documented defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Depth:           1,
		AvgChildren:     5,
		AvgStringLength: 50,
		NameCharRange:   unicodex.DefaultNameRange(),
		ValueCharRange:  unicodex.DefaultValueRange(),
	}
}

// Normalize clamps invalid settings back to their defaults.
func (c *GeneratorConfig) Normalize() {
	def := DefaultGeneratorConfig()
	if c.Depth < 1 {
		c.Depth = def.Depth
	}
	if c.AvgChildren <= 0 {
		c.AvgChildren = def.AvgChildren
	}
	if c.AvgStringLength <= 0 {
		c.AvgStringLength = def.AvgStringLength
	}
	if c.NameCharRange.Min == 0 && c.NameCharRange.Max == 0 {
		c.NameCharRange = def.NameCharRange
	}
	if c.ValueCharRange.Min == 0 && c.ValueCharRange.Max == 0 {
		c.ValueCharRange = def.ValueCharRange
	}
}

// DocumentGenerator builds a random but bounded document, used for
// round-trip testing.
type DocumentGenerator struct {
	Config GeneratorConfig
	doc    *jsondom.Document
	rnd    *rand.Rand
}

// NewDocumentGenerator returns a generator filling doc.
func NewDocumentGenerator(doc *jsondom.Document) *DocumentGenerator {
	return &DocumentGenerator{Config: DefaultGeneratorConfig(), doc: doc}
}

// Doc returns the target document.
func (g *DocumentGenerator) Doc() *jsondom.Document { return g.doc }

// Run replaces the document content with a random tree of the configured
// depth.
func (g *DocumentGenerator) Run() {
	g.Config.Normalize()
	seed := g.Config.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	g.rnd = rand.New(rand.NewSource(seed))
	g.doc.Clear()

	levelCount := g.Config.Depth
	if levelCount == 1 {
		_ = g.doc.SetRoot(g.generateValue(g.randomValueType()))
		return
	}
	root := g.generateValue(g.randomContainerType())
	_ = g.doc.SetRoot(root)
	g.generateLevel(2, levelCount, []*jsondom.Value{root})
}

// generateLevel fills each parent container with random children. Before
// the last level every parent is guaranteed at least one container child so
// the requested depth is reached.
func (g *DocumentGenerator) generateLevel(currLevel, levelCount int, parents []*jsondom.Value) {
	isLastLevel := currLevel == levelCount
	for _, parent := range parents {
		var containers []*jsondom.Value
		valueCount := g.randomRange(1, g.Config.AvgChildren*2)
		for i := 0; i < valueCount; i++ {
			var child *jsondom.Value
			switch {
			case i == valueCount-1 && len(containers) == 0 && !isLastLevel:
				child = g.generateValue(g.randomContainerType())
			case isLastLevel:
				child = g.generateValue(g.randomScalarType())
			default:
				child = g.generateValue(g.randomValueType())
			}
			if child.IsContainer() {
				containers = append(containers, child)
			}
			g.appendChild(parent, child)
		}
		if !isLastLevel {
			g.generateLevel(currLevel+1, levelCount, containers)
		}
	}
}

func (g *DocumentGenerator) appendChild(parent, child *jsondom.Value) {
	if parent.Kind() == jsondom.KindObject {
		for {
			name := g.randomString(g.randomRange(3, 32), g.Config.NameCharRange)
			if !parent.ContainsMember(name) {
				_ = parent.AppendMember(name, child)
				return
			}
		}
	}
	_ = parent.Append(child)
}

func (g *DocumentGenerator) generateValue(kind jsondom.ValueKind) *jsondom.Value {
	switch kind {
	case jsondom.KindArray:
		return g.doc.CreateArray()
	case jsondom.KindObject:
		return g.doc.CreateObject()
	case jsondom.KindLiteral:
		v, _ := g.doc.CreateLiteral(g.randomLiteralName())
		return v
	case jsondom.KindNumber:
		if g.rnd.Intn(2) == 0 {
			return g.doc.CreateNumberInt(int64(g.randomRange(math.MinInt32, math.MaxInt32)))
		}
		return g.doc.CreateNumberFloat(math.Pow(10, float64(g.randomRange(-20, 20))) * (g.rnd.Float64() - 0.5))
	default:
		length := g.randomRange(g.Config.AvgStringLength/2, g.Config.AvgStringLength*3/2)
		if length < 1 {
			length = 1
		}
		return g.doc.CreateString(g.randomString(length, g.Config.ValueCharRange))
	}
}

func (g *DocumentGenerator) randomLiteralName() string {
	switch g.randomRange(1, 3) {
	case 1:
		return "false"
	case 2:
		return "null"
	default:
		return "true"
	}
}

func (g *DocumentGenerator) randomValueType() jsondom.ValueKind {
	switch g.randomRange(1, 5) {
	case 1:
		return jsondom.KindArray
	case 2:
		return jsondom.KindLiteral
	case 3:
		return jsondom.KindNumber
	case 4:
		return jsondom.KindObject
	default:
		return jsondom.KindString
	}
}

func (g *DocumentGenerator) randomScalarType() jsondom.ValueKind {
	switch g.randomRange(1, 3) {
	case 1:
		return jsondom.KindLiteral
	case 2:
		return jsondom.KindNumber
	default:
		return jsondom.KindString
	}
}

func (g *DocumentGenerator) randomContainerType() jsondom.ValueKind {
	if g.randomRange(1, 2) == 1 {
		return jsondom.KindArray
	}
	return jsondom.KindObject
}

// randomRange returns a uniform value in [min, max].
func (g *DocumentGenerator) randomRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.rnd.Intn(max-min+1)
}

// randomString samples length characters from the range, rejecting
// noncharacters and surrogate code units, which cannot live in a string.
func (g *DocumentGenerator) randomString(length int, r unicodex.CharRange) string {
	out := make([]rune, 0, length)
	for len(out) < length {
		c := rune(g.randomRange(int(r.Min), int(r.Max)))
		if unicodex.IsNoncharacter(c) || unicodex.IsSurrogate(c) {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}
