package domain

import "time"

// Release é o lançamento diário de um vendedor em um canal.
// A chave natural é (SellerID, ChannelID, dia civil de DateRelease).
type Release struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	SellerName  string    `json:"seller_name,omitempty"`
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name,omitempty"`
	DateRelease time.Time `json:"date_release"`
	Leads       int       `json:"leads"`
	Sales       int       `json:"vendas"`
	Bats        int       `json:"bats"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Release) NaturalKey() string {
	return NaturalKey(r.SellerID, r.ChannelID, r.DateRelease)
}

// ReleaseDraft é um lançamento vindo de importação. Campos nil não foram
// informados e preservam o valor já gravado no upsert.
type ReleaseDraft struct {
	SellerID    string
	ChannelID   string
	DateRelease time.Time
	Leads       *int
	Sales       *int
	Bats        *int
}

func (d *ReleaseDraft) NaturalKey() string {
	return NaturalKey(d.SellerID, d.ChannelID, d.DateRelease)
}

// ApplyTo copia para o lançamento apenas os campos informados.
func (d *ReleaseDraft) ApplyTo(release *Release) {
	if d.Leads != nil {
		release.Leads = *d.Leads
	}
	if d.Sales != nil {
		release.Sales = *d.Sales
	}
	if d.Bats != nil {
		release.Bats = *d.Bats
	}
}

func NaturalKey(sellerID, channelID string, date time.Time) string {
	return sellerID + "|" + channelID + "|" + date.Format("2006-01-02")
}

// Count devolve um ponteiro para n, usado nos campos opcionais de ReleaseDraft.
func Count(n int) *int {
	return &n
}

type ReleaseFilters struct {
	StartDate time.Time
	EndDate   time.Time
	Search    string
	ChannelID string
}

type ReleaseInput struct {
	SellerID    string    `json:"seller_id" validate:"required"`
	ChannelID   string    `json:"channel_id" validate:"required"`
	DateRelease time.Time `json:"date_release" validate:"required"`
	Leads       int       `json:"leads" validate:"gte=0"`
	Sales       int       `json:"vendas" validate:"gte=0"`
	Bats        int       `json:"bats" validate:"gte=0,ltefield=Sales"`
}
