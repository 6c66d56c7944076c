// ABOUTME: Mappers for converting page domain models to API DTOs
// ABOUTME: Builds the placeholder shown when content is missing or unavailable

package mappers

import (
	"fmt"

	"microsite-api/api/dto/responses"
	"microsite-api/core/domain"
)

// ToAssetResponse converts a resolved asset. Invalid assets map to nil.
func ToAssetResponse(asset *domain.CanonicalAsset) *responses.AssetResponse {
	if !asset.IsValid() {
		return nil
	}
	return &responses.AssetResponse{
		URL:   asset.URL,
		Kind:  string(asset.Kind),
		Title: asset.Title,
	}
}

// ToProductCardResponses converts product cards, preserving order
func ToProductCardResponses(cards []domain.ProductCard) []responses.ProductCardResponse {
	out := make([]responses.ProductCardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, responses.ProductCardResponse{
			Title:       card.Title,
			Description: card.Description,
			Image:       ToAssetResponse(card.Image),
		})
	}
	return out
}

// ToPageContentResponse converts page content
func ToPageContentResponse(page *domain.PageContent) *responses.PageContentResponse {
	if page == nil {
		return nil
	}
	return &responses.PageContentResponse{
		Heading:     page.Heading,
		SubHeading:  page.SubHeading,
		Description: page.Description,
		Products:    ToProductCardResponses(page.Products),
		Video:       ToAssetResponse(page.Video),
	}
}

// ToPageResponse builds the page envelope. A fetch error yields the
// unavailable placeholder and a nil page the empty one.
func ToPageResponse(providerName string, draft bool, page *domain.PageContent, err error) responses.PageResponse {
	resp := responses.PageResponse{
		Provider: providerName,
		Draft:    draft,
	}
	switch {
	case err != nil:
		resp.Status = responses.StatusUnavailable
		resp.Placeholder = UnavailablePlaceholder()
	case page == nil:
		resp.Status = responses.StatusEmpty
		resp.Placeholder = EmptyPlaceholder(providerName)
	default:
		resp.Status = responses.StatusOK
		resp.Content = ToPageContentResponse(page)
	}
	return resp
}

// ToProductsResponse builds the products envelope with the same placeholder policy
func ToProductsResponse(providerName string, draft bool, cards []domain.ProductCard, err error) responses.ProductsResponse {
	resp := responses.ProductsResponse{
		Provider: providerName,
		Draft:    draft,
		Products: []responses.ProductCardResponse{},
	}
	switch {
	case err != nil:
		resp.Status = responses.StatusUnavailable
		resp.Placeholder = UnavailablePlaceholder()
	case len(cards) == 0:
		resp.Status = responses.StatusEmpty
		resp.Placeholder = EmptyPlaceholder(providerName)
	default:
		resp.Status = responses.StatusOK
		resp.Products = ToProductCardResponses(cards)
	}
	return resp
}

// EmptyPlaceholder is shown when the CMS has no entry configured
func EmptyPlaceholder(providerName string) *responses.Placeholder {
	return &responses.Placeholder{
		Title:   fmt.Sprintf("No content found in %s", displayName(providerName)),
		Message: fmt.Sprintf("Please set up your %s content models and entries", displayName(providerName)),
	}
}

// UnavailablePlaceholder is shown when content could not be fetched
func UnavailablePlaceholder() *responses.Placeholder {
	return &responses.Placeholder{
		Title:   "Content is temporarily unavailable",
		Message: "Please try again in a moment",
	}
}

func displayName(providerName string) string {
	switch providerName {
	case "contentful":
		return "Contentful"
	case "contentstack":
		return "Contentstack"
	case "":
		return "the CMS"
	default:
		return providerName
	}
}
