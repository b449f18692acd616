package rainforest

// Money is the {value, currency} pair Rainforest uses for every price field.
type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type Seller struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	NumRatings int     `json:"num_ratings"`
}

type Fulfillment struct {
	Type string `json:"type"`
}

type Condition struct {
	Title string `json:"title"`
	IsNew bool   `json:"is_new"`
}

type BuyboxWinner struct {
	Price        *Money       `json:"price"`
	Seller       *Seller      `json:"seller"`
	Fulfillment  *Fulfillment `json:"fulfillment"`
	IsPrime      bool         `json:"is_prime"`
	Availability *struct {
		Raw string `json:"raw"`
	} `json:"availability"`
}

type Category struct {
	Name string `json:"name"`
}

type Product struct {
	ASIN         string        `json:"asin"`
	Title        string        `json:"title"`
	Rating       float64       `json:"rating"`
	RatingsTotal int           `json:"ratings_total"`
	Price        *Money        `json:"price"`
	Categories   []Category    `json:"categories"`
	BuyboxWinner *BuyboxWinner `json:"buybox_winner"`
}

type Offer struct {
	Price          *Money       `json:"price"`
	Seller         *Seller      `json:"seller"`
	Fulfillment    *Fulfillment `json:"fulfillment"`
	IsPrime        bool         `json:"is_prime"`
	Condition      *Condition   `json:"condition"`
	IsBuyboxWinner bool         `json:"is_buybox_winner"`
}

type ProductResponse struct {
	Product Product `json:"product"`
	Offers  []Offer `json:"offers"`
}

type OffersResponse struct {
	Offers []Offer `json:"offers"`
}
