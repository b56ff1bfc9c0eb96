package tradier

type QuoteHistory struct {
	History struct {
		Day []struct {
			Date   string  `json:"date"`
			Open   float64 `json:"open"`
			High   float64 `json:"high"`
			Low    float64 `json:"low"`
			Close  float64 `json:"close"`
			Volume int     `json:"volume"`
		} `json:"day"`
	} `json:"history"`
}

type Quote struct {
	Symbol    string  `json:"symbol"`
	Last      float64 `json:"last"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	Close     float64 `json:"close"`
	Prevclose float64 `json:"prevclose"`
}

type QuoteResponse struct {
	Quotes struct {
		Quote Quote `json:"quote"`
	} `json:"quotes"`
}

type OptionExpirations struct {
	Expirations struct {
		Expiration []struct {
			Date           string `json:"date"`
			ContractSize   int    `json:"contract_size"`
			ExpirationType string `json:"expiration_type"`
			Strikes        struct {
				Strike []float64 `json:"strike"`
			} `json:"strikes"`
		} `json:"expiration"`
	} `json:"expirations"`
}

type Option struct {
	Symbol         string  `json:"symbol"`
	Description    string  `json:"description"`
	Type           string  `json:"type"`
	Volume         int     `json:"volume"`
	Bid            float64 `json:"bid"`
	Ask            float64 `json:"ask"`
	Underlying     string  `json:"underlying"`
	Strike         float64 `json:"strike"`
	OpenInterest   int     `json:"open_interest"`
	ContractSize   int     `json:"contract_size"`
	ExpirationDate string  `json:"expiration_date"`
	OptionType     string  `json:"option_type"`
	RootSymbol     string  `json:"root_symbol"`
	Greeks         struct {
		BidIv     float64 `json:"bid_iv"`
		MidIv     float64 `json:"mid_iv"`
		AskIv     float64 `json:"ask_iv"`
		SmvVol    float64 `json:"smv_vol"`
		UpdatedAt string  `json:"updated_at"`
	} `json:"greeks"`
}

type OptionChain struct {
	Options        OptionList `json:"options"`
	ExpirationDate string     `json:"expiration_date"`
}

type OptionList struct {
	Option []Option `json:"option"`
}
