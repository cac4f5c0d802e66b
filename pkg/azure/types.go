package azure

// Wire types for the Document Intelligence analyze REST response. Only the
// parts the toolkit consumes are modeled; everything else is ignored on
// decode.

type analyzeOperation struct {
	Status        string         `json:"status"`
	Error         *analyzeError  `json:"error"`
	AnalyzeResult *analyzeResult `json:"analyzeResult"`
}

type analyzeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type analyzeResult struct {
	ModelID       string         `json:"modelId"`
	Content       string         `json:"content"`
	Pages         []analyzePage  `json:"pages"`
	Documents     []analyzeDoc   `json:"documents"`
	KeyValuePairs []analyzeKVP   `json:"keyValuePairs"`
	Tables        []analyzeTable `json:"tables"`
}

type analyzePage struct {
	PageNumber int           `json:"pageNumber"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Unit       string        `json:"unit"`
	Words      []analyzeWord `json:"words"`
}

type analyzeWord struct {
	Content    string    `json:"content"`
	Polygon    []float64 `json:"polygon"`
	Confidence float64   `json:"confidence"`
}

type analyzeDoc struct {
	DocType    string                  `json:"docType"`
	Confidence float64                 `json:"confidence"`
	Fields     map[string]analyzeField `json:"fields"`
}

type analyzeField struct {
	Type          string           `json:"type"`
	Content       string           `json:"content"`
	Confidence    *float64         `json:"confidence"`
	ValueNumber   *float64         `json:"valueNumber"`
	ValueInteger  *int64           `json:"valueInteger"`
	ValueCurrency *analyzeCurrency `json:"valueCurrency"`
}

type analyzeCurrency struct {
	Amount         float64 `json:"amount"`
	CurrencySymbol string  `json:"currencySymbol"`
}

type analyzeKVP struct {
	Key        *analyzeKVPContent `json:"key"`
	Value      *analyzeKVPContent `json:"value"`
	Confidence *float64           `json:"confidence"`
}

type analyzeKVPContent struct {
	Content string `json:"content"`
}

type analyzeTable struct {
	RowCount        int             `json:"rowCount"`
	ColumnCount     int             `json:"columnCount"`
	Cells           []analyzeCell   `json:"cells"`
	BoundingRegions []analyzeRegion `json:"boundingRegions"`
}

type analyzeCell struct {
	RowIndex    int    `json:"rowIndex"`
	ColumnIndex int    `json:"columnIndex"`
	Kind        string `json:"kind"`
	Content     string `json:"content"`
}

type analyzeRegion struct {
	PageNumber int       `json:"pageNumber"`
	Polygon    []float64 `json:"polygon"`
}
