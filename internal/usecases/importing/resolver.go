package importing

import (
	"strings"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

// ResolveSeller encontra o vendedor pelo nome: igualdade, depois primeiro nome,
// depois substring em qualquer direção. Retorna nil quando nada corresponde.
func ResolveSeller(name string, sellers []domain.Seller) *domain.Seller {
	input := normalize(name)
	if input == "" {
		return nil
	}

	for i := range sellers {
		if normalize(sellers[i].Name) == input {
			return &sellers[i]
		}
	}

	if i := firstTokenMatch(input, len(sellers), func(i int) string { return sellers[i].Name }); i >= 0 {
		return &sellers[i]
	}

	if i := substringMatch(input, len(sellers), func(i int) string { return sellers[i].Name }); i >= 0 {
		return &sellers[i]
	}

	return nil
}

// ResolveChannel usa o catálogo padrão de apelidos.
func ResolveChannel(label string, channels []domain.Channel) *domain.Channel {
	return defaultCatalog.ResolveChannel(label, channels)
}

// ResolveChannel encontra o canal pelo rótulo: igualdade, primeiro termo, apelido e substring.
func (c *ChannelCatalog) ResolveChannel(label string, channels []domain.Channel) *domain.Channel {
	input := normalize(label)
	if input == "" {
		return nil
	}

	for i := range channels {
		if normalize(channels[i].Name) == input {
			return &channels[i]
		}
	}

	if i := firstTokenMatch(input, len(channels), func(i int) string { return channels[i].Name }); i >= 0 {
		return &channels[i]
	}

	if key := c.Classify(input); key != "" {
		for i := range channels {
			if ChannelKey(channels[i].Name) == key {
				return &channels[i]
			}
		}
	}

	if i := substringMatch(input, len(channels), func(i int) string { return channels[i].Name }); i >= 0 {
		return &channels[i]
	}

	return nil
}

func firstTokenMatch(input string, n int, nameAt func(int) string) int {
	for i := 0; i < n; i++ {
		fields := strings.Fields(normalize(nameAt(i)))
		if len(fields) == 0 {
			continue
		}

		first := fields[0]
		if first == input || strings.HasPrefix(input, first) {
			return i
		}
	}
	return -1
}

func substringMatch(input string, n int, nameAt func(int) string) int {
	for i := 0; i < n; i++ {
		name := normalize(nameAt(i))
		if name == "" {
			continue
		}

		if strings.Contains(name, input) || strings.Contains(input, name) {
			return i
		}
	}
	return -1
}
