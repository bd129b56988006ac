package apimodels

// AnalyzeResponse is the document returned by the remote analysis API.
// Every field is optional: the service gives no presence guarantees.
type AnalyzeResponse struct {
	// Identifier assigned by the backend to this analysis
	UUID *string `json:"uuid,omitempty" mapstructure:"uuid"`

	// The query as echoed back by the backend
	Query *string `json:"query,omitempty" mapstructure:"query"`

	// The structured analysis of the listing
	Analysis *Analysis `json:"analysis,omitempty" mapstructure:"analysis"`

	// Any other top-level fields, passed through untouched
	Extra map[string]interface{} `json:"extra,omitempty" mapstructure:",remain"`

	// The decoded JSON document as received
	Raw map[string]interface{} `json:"-" mapstructure:"-"`
}

type Analysis struct {
	BasicInfo         *BasicInfo         `json:"basic_info,omitempty" mapstructure:"basic_info"`
	Features          *Features          `json:"features,omitempty" mapstructure:"features"`
	Location          *Location          `json:"location,omitempty" mapstructure:"location"`
	Evaluation        *Evaluation        `json:"evaluation,omitempty" mapstructure:"evaluation"`
	FinancialAnalysis *FinancialAnalysis `json:"financial_analysis,omitempty" mapstructure:"financial_analysis"`
}

// BasicInfo holds the identifying facts of a listing. Monetary fields are
// strings as the backend reports them (e.g. "120000" or "8.5万円").
type BasicInfo struct {
	PropertyName  *string `json:"property_name,omitempty" mapstructure:"property_name"`
	Address       *string `json:"address,omitempty" mapstructure:"address"`
	RoomNumber    *string `json:"room_number,omitempty" mapstructure:"room_number"`
	Rent          *string `json:"rent,omitempty" mapstructure:"rent"`
	ManagementFee *string `json:"management_fee,omitempty" mapstructure:"management_fee"`
	Deposit       *string `json:"deposit,omitempty" mapstructure:"deposit"`
	KeyMoney      *string `json:"key_money,omitempty" mapstructure:"key_money"`
	Area          *string `json:"area,omitempty" mapstructure:"area"`
	Layout        *string `json:"layout,omitempty" mapstructure:"layout"`
	BuildingAge   *string `json:"building_age,omitempty" mapstructure:"building_age"`
	Floor         *string `json:"floor,omitempty" mapstructure:"floor"`
	Direction     *string `json:"direction,omitempty" mapstructure:"direction"`
	BuildingType  *string `json:"building_type,omitempty" mapstructure:"building_type"`
}

type Features struct {
	Amenities       []string `json:"amenities,omitempty" mapstructure:"amenities"`
	Equipment       []string `json:"equipment,omitempty" mapstructure:"equipment"`
	SpecialFeatures []string `json:"special_features,omitempty" mapstructure:"special_features"`
}

type Location struct {
	NearestStations        []Station `json:"nearest_stations,omitempty" mapstructure:"nearest_stations"`
	SurroundingEnvironment *string   `json:"surrounding_environment,omitempty" mapstructure:"surrounding_environment"`
}

type Station struct {
	Line        *string `json:"line,omitempty" mapstructure:"line"`
	Station     *string `json:"station,omitempty" mapstructure:"station"`
	WalkingTime *string `json:"walking_time,omitempty" mapstructure:"walking_time"`
}

type Evaluation struct {
	Advantages    []string `json:"advantages,omitempty" mapstructure:"advantages"`
	Disadvantages []string `json:"disadvantages,omitempty" mapstructure:"disadvantages"`

	// Rating on a 0-5 scale
	OverallRating *float64 `json:"overall_rating,omitempty" mapstructure:"overall_rating"`

	RecommendationScore *string `json:"recommendation_score,omitempty" mapstructure:"recommendation_score"`
	Summary             *string `json:"summary,omitempty" mapstructure:"summary"`
}

// FinancialAnalysis is the optional regional fiscal-health block some
// backend revisions attach to an analysis.
type FinancialAnalysis struct {
	FinancialStatus       *string              `json:"financial_status,omitempty" mapstructure:"financial_status"`
	OverallScore          *float64             `json:"overall_score,omitempty" mapstructure:"overall_score"`
	AnalysisSummary       *string              `json:"analysis_summary,omitempty" mapstructure:"analysis_summary"`
	PositiveFactors       []string             `json:"positive_factors,omitempty" mapstructure:"positive_factors"`
	NegativeFactors       []string             `json:"negative_factors,omitempty" mapstructure:"negative_factors"`
	FinancialIndicators   *FinancialIndicators `json:"financial_indicators,omitempty" mapstructure:"financial_indicators"`
	DataReliability       *DataReliability     `json:"data_reliability,omitempty" mapstructure:"data_reliability"`
	VertexAISearchSummary *string              `json:"vertex_ai_search_summary,omitempty" mapstructure:"vertex_ai_search_summary"`
	SearchMetadata        *SearchMetadata      `json:"search_metadata,omitempty" mapstructure:"search_metadata"`
}

type FinancialIndicators struct {
	RevenueTotal     *string `json:"revenue_total,omitempty" mapstructure:"revenue_total"`
	ExpenditureTotal *string `json:"expenditure_total,omitempty" mapstructure:"expenditure_total"`
	DebtRatio        *string `json:"debt_ratio,omitempty" mapstructure:"debt_ratio"`
}

type DataReliability struct {
	DataSources        *int    `json:"data_sources,omitempty" mapstructure:"data_sources"`
	ConfidenceLevel    *string `json:"confidence_level,omitempty" mapstructure:"confidence_level"`
	SearchSuccessful   *bool   `json:"search_successful,omitempty" mapstructure:"search_successful"`
	VertexAISearchUsed *bool   `json:"vertex_ai_search_used,omitempty" mapstructure:"vertex_ai_search_used"`
}

type SearchMetadata struct {
	SearchSuccessful *bool   `json:"search_successful,omitempty" mapstructure:"search_successful"`
	ResultsCount     *int    `json:"results_count,omitempty" mapstructure:"results_count"`
	APIType          *string `json:"api_type,omitempty" mapstructure:"api_type"`
}
