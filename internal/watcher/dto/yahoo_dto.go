package dto

// YahooSearchResponse is the payload returned by the Yahoo Finance search
// endpoint.
type YahooSearchResponse struct {
	News []YahooNewsItem `json:"news"`
}

// YahooNewsItem is a single news entry in a Yahoo Finance search response.
// ProviderPublishTime is epoch seconds.
type YahooNewsItem struct {
	UUID                string `json:"uuid"`
	Title               string `json:"title"`
	Publisher           string `json:"publisher"`
	Link                string `json:"link"`
	ProviderPublishTime int64  `json:"providerPublishTime"`
}
