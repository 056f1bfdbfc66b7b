package domain

// Row é uma linha de planilha já lida: coluna -> valor bruto (string, float64 ou time.Time).
type Row map[string]any

// Sheet é uma aba da planilha de vendas; o nome da aba é o nome do vendedor.
type Sheet struct {
	Name string
	Rows []Row
}

type Workbook []Sheet

type AttendanceCount struct {
	AttendantName string         `json:"atendente"`
	ChannelCounts map[string]int `json:"canais"`
}

type SalesCount struct {
	SellerID    string `json:"seller_id"`
	SellerName  string `json:"seller_name"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	Sales       int    `json:"vendas"`
	Bats        int    `json:"bats"`
}

// SalesBySellerAndChannel agrupa as vendas por vendedor e depois por canal (IDs).
type SalesBySellerAndChannel map[string]map[string]*SalesCount
