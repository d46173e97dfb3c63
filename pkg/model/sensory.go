package model

// SensoryScores holds a reviewer's 0..10 ratings. A nil field was not rated.
type SensoryScores struct {
	Foam         *int
	Color        *int
	Transparency *int
	Sweetness    *int
	Bitterness   *int
	Acidity      *int
	Roundness    *int
	Gushing      *int
	Alcohol      *int
	Ethereal     *int
	Fruity       *int
	Floral       *int
	Hoppy        *int
	Resinous     *int
	Nutty        *int
	Herbal       *int
	Cereal       *int
	Caramel      *int
	Burnt        *int
}

// SensoryAggregates holds the per-beer means of SensoryScores.
type SensoryAggregates struct {
	Foam         float64
	Color        float64
	Transparency float64
	Sweetness    float64
	Bitterness   float64
	Acidity      float64
	Roundness    float64
	Gushing      float64
	Alcohol      float64
	Ethereal     float64
	Fruity       float64
	Floral       float64
	Hoppy        float64
	Resinous     float64
	Nutty        float64
	Herbal       float64
	Cereal       float64
	Caramel      float64
	Burnt        float64
}

const (
	MinSensoryValue = 0
	MaxSensoryValue = 10
)

// SensoryField ties a field name to its slot on a review and on a beer.
type SensoryField struct {
	Name      string
	Review    func(*Review) **int
	Aggregate func(*Beer) *float64
}

// ScoreField is the overall score. It is aggregated like the sensory fields
// but rounded, so it is kept out of SensoryFields.
var ScoreField = SensoryField{
	Name:      "score",
	Review:    func(r *Review) **int { return &r.Score },
	Aggregate: func(b *Beer) *float64 { return &b.Score },
}

var SensoryFields = []SensoryField{
	{"foam", func(r *Review) **int { return &r.Foam }, func(b *Beer) *float64 { return &b.Foam }},
	{"color", func(r *Review) **int { return &r.Color }, func(b *Beer) *float64 { return &b.Color }},
	{"transparency", func(r *Review) **int { return &r.Transparency }, func(b *Beer) *float64 { return &b.Transparency }},
	{"sweetness", func(r *Review) **int { return &r.Sweetness }, func(b *Beer) *float64 { return &b.Sweetness }},
	{"bitterness", func(r *Review) **int { return &r.Bitterness }, func(b *Beer) *float64 { return &b.Bitterness }},
	{"acidity", func(r *Review) **int { return &r.Acidity }, func(b *Beer) *float64 { return &b.Acidity }},
	{"roundness", func(r *Review) **int { return &r.Roundness }, func(b *Beer) *float64 { return &b.Roundness }},
	{"gushing", func(r *Review) **int { return &r.Gushing }, func(b *Beer) *float64 { return &b.Gushing }},
	{"alcohol", func(r *Review) **int { return &r.Alcohol }, func(b *Beer) *float64 { return &b.Alcohol }},
	{"ethereal", func(r *Review) **int { return &r.Ethereal }, func(b *Beer) *float64 { return &b.Ethereal }},
	{"fruity", func(r *Review) **int { return &r.Fruity }, func(b *Beer) *float64 { return &b.Fruity }},
	{"floral", func(r *Review) **int { return &r.Floral }, func(b *Beer) *float64 { return &b.Floral }},
	{"hoppy", func(r *Review) **int { return &r.Hoppy }, func(b *Beer) *float64 { return &b.Hoppy }},
	{"resinous", func(r *Review) **int { return &r.Resinous }, func(b *Beer) *float64 { return &b.Resinous }},
	{"nutty", func(r *Review) **int { return &r.Nutty }, func(b *Beer) *float64 { return &b.Nutty }},
	{"herbal", func(r *Review) **int { return &r.Herbal }, func(b *Beer) *float64 { return &b.Herbal }},
	{"cereal", func(r *Review) **int { return &r.Cereal }, func(b *Beer) *float64 { return &b.Cereal }},
	{"caramel", func(r *Review) **int { return &r.Caramel }, func(b *Beer) *float64 { return &b.Caramel }},
	{"burnt", func(r *Review) **int { return &r.Burnt }, func(b *Beer) *float64 { return &b.Burnt }},
}

// RatedFields is SensoryFields followed by ScoreField.
func RatedFields() []SensoryField {
	fields := make([]SensoryField, 0, len(SensoryFields)+1)
	fields = append(fields, SensoryFields...)

	return append(fields, ScoreField)
}

func LookupSensoryField(name string) (SensoryField, bool) {
	for _, field := range RatedFields() {
		if field.Name == name {
			return field, true
		}
	}

	return SensoryField{}, false
}
