package importing

import (
	"time"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

var (
	referenceDate = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	testSellers = []domain.Seller{
		{ID: "s-ana", Name: "Ana Souza", IsActive: true},
		{ID: "s-bruno", Name: "Bruno Lima", IsActive: true},
		{ID: "s-carla", Name: "Carla", IsActive: true},
	}

	testChannels = []domain.Channel{
		{ID: "c-apu", Name: "Apucarana"},
		{ID: "c-ecom", Name: "E-commerce"},
		{ID: "c-fb", Name: "Facebook"},
		{ID: "c-google", Name: "Google"},
		{ID: "c-insta", Name: "Instagram"},
		{ID: "c-lp", Name: "Landing Pages"},
		{ID: "c-sites", Name: "Sites"},
		{ID: "c-tel", Name: "Tel 0800"},
	}
)

func attendanceRow(attendant, name, tags string) domain.Row {
	return domain.Row{ColumnAttendant: attendant, ColumnName: name, ColumnTags: tags}
}
