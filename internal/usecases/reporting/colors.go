package reporting

import "strings"

const fallbackChannelColor = "#2196F3"

var channelColors = []struct {
	name  string
	color string
}{
	{"instagram", "#E1306C"},
	{"facebook", "#4267B2"},
	{"google", "#DB4437"},
	{"ecommerce", "#6A0DAD"},
	{"e-commerce", "#6A0DAD"},
	{"apucarana", "#FF8C00"},
	{"landing pages", "#0077B5"},
	{"tel 0800", "#00CD66"},
}

var sellerColors = []string{
	"#3366CC", "#DC3912", "#FF9900", "#109618", "#990099",
	"#0099C6", "#DD4477", "#66AA00", "#B82E2E", "#316395",
	"#994499", "#22AA99", "#AAAA11", "#6633CC", "#E67300",
	"#8B0707", "#329262", "#5574A6", "#3B3EAC",
}

// Color devolve a cor usada nos gráficos. Canais usam a paleta fixa pelo nome;
// vendedores usam a soma dos caracteres da semente.
func Color(seed string, isChannel bool) string {
	if isChannel {
		name := strings.ToLower(seed)
		for _, entry := range channelColors {
			if strings.Contains(name, entry.name) {
				return entry.color
			}
		}
		return fallbackChannelColor
	}

	sum := 0
	for _, r := range seed {
		sum += int(r)
	}
	return sellerColors[sum%len(sellerColors)]
}
