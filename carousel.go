package surge

// Carousel type tag constants.
const (
	CarouselTypeBoundedRounds  = "bounded_rounds"
	CarouselTypeDataKey        = "data_key"
	CarouselTypeOrdinalColumns = "ordinal_columns"
)

// Carousel configures showing workers multiple rounds of the same task.
type Carousel interface {
	// CarouselType returns the wire-format type tag.
	CarouselType() string
	// ToParams flattens the carousel to its wire-format mapping,
	// including the type tag.
	ToParams() Params
}

// BoundedRoundsCarousel runs between a minimum and maximum number of
// rounds.
type BoundedRoundsCarousel struct {
	MinRounds int
	MaxRounds int
}

// CarouselType returns the type tag for BoundedRoundsCarousel.
func (c *BoundedRoundsCarousel) CarouselType() string { return CarouselTypeBoundedRounds }

// ToParams flattens the carousel to wire format.
func (c *BoundedRoundsCarousel) ToParams() Params {
	return Params{
		"carousel_type":           CarouselTypeBoundedRounds,
		"min_rounds_for_carousel": c.MinRounds,
		"max_rounds_for_carousel": c.MaxRounds,
	}
}

// DataKeyCarousel derives its rounds from a task data key.
type DataKeyCarousel struct {
	DataKey string
}

// CarouselType returns the type tag for DataKeyCarousel.
func (c *DataKeyCarousel) CarouselType() string { return CarouselTypeDataKey }

// ToParams flattens the carousel to wire format.
func (c *DataKeyCarousel) ToParams() Params {
	return Params{
		"carousel_type":     CarouselTypeDataKey,
		"carousel_data_key": c.DataKey,
	}
}

// OrdinalColumnsCarousel derives its rounds from ordinally-named task
// data columns, up to a maximum.
type OrdinalColumnsCarousel struct {
	MaxRounds int
}

// CarouselType returns the type tag for OrdinalColumnsCarousel.
func (c *OrdinalColumnsCarousel) CarouselType() string { return CarouselTypeOrdinalColumns }

// ToParams flattens the carousel to wire format.
func (c *OrdinalColumnsCarousel) ToParams() Params {
	return Params{
		"carousel_type":           CarouselTypeOrdinalColumns,
		"max_rounds_for_carousel": c.MaxRounds,
	}
}
