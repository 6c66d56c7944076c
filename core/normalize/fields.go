// ABOUTME: Per-provider field alias tables consumed by the entry normalizer
// ABOUTME: Each canonical field lists its provider field names in precedence order

package normalize

// FieldMap lists, for each canonical field, the raw field paths to try in order.
// Paths use gjson syntax relative to the entry.
type FieldMap struct {
	Provider string

	Heading     []string
	SubHeading  []string
	Description []string

	// Products are paths to the product list; the first array found wins
	Products           []string
	ProductTitle       []string
	ProductDescription []string
	ProductImage       []string

	Video      []string
	VideoTitle []string
}

// ContentfulFields maps microWebsiteContent, product and video entries from the GraphQL API
func ContentfulFields() FieldMap {
	return FieldMap{
		Provider:           "contentful",
		Heading:            []string{"heading"},
		SubHeading:         []string{"subHeading", "sub_heading"},
		Description:        []string{"headingDescription", "heading_description", "description"},
		Products:           []string{"imagesCollection.items", "productsCollection.items", "images"},
		ProductTitle:       []string{"title", "name"},
		ProductDescription: []string{"description"},
		ProductImage:       []string{"image", "custom"},
		Video:              []string{"video"},
		VideoTitle:         []string{"name", "title"},
	}
}

// ContentstackFields maps micro_website_content and frontify_video_content entries from the REST API
func ContentstackFields() FieldMap {
	return FieldMap{
		Provider:           "contentstack",
		Heading:            []string{"heading"},
		SubHeading:         []string{"sub_heading", "subHeading"},
		Description:        []string{"heading_description", "headingDescription", "description"},
		Products:           []string{"images"},
		ProductTitle:       []string{"title"},
		ProductDescription: []string{"description"},
		ProductImage:       []string{"custom", "image"},
		Video:              []string{"json_rte", "video"},
		VideoTitle:         []string{"title", "name"},
	}
}
