package importing

import (
	"sort"
	"strings"
)

// Chaves canônicas dos canais.
const (
	ChannelEcommerce    = "ecommerce"
	ChannelFacebook     = "facebook"
	ChannelGoogle       = "google"
	ChannelLandingPages = "landingpages"
	ChannelSites        = "sites"
	ChannelInstagram    = "instagram"
	ChannelApucarana    = "apucarana"
	ChannelTel0800      = "tel0800"
)

type channelAliases struct {
	key     string
	aliases []string
}

// A ordem importa: uma tag conta apenas para o primeiro canal cujo apelido coincide.
var defaultChannelAliases = []channelAliases{
	{ChannelEcommerce, []string{"ecommerce", "e-commerce", "ecomerce", "e commerce", "loja virtual"}},
	{ChannelFacebook, []string{"facebook", "fb", "face"}},
	{ChannelGoogle, []string{"google", "adwords", "google ads"}},
	{ChannelLandingPages, []string{"landingpages", "landing page", "landing pages", "landingpage", "lp"}},
	{ChannelSites, []string{"sites", "site", "website", "web"}},
	{ChannelInstagram, []string{"instagram", "insta", "ig"}},
	{ChannelApucarana, []string{"apucarana"}},
	{ChannelTel0800, []string{"tel 0800", "tel0800", "0800", "telefone"}},
}

// ChannelCatalog é a tabela de apelidos que liga textos livres das planilhas às chaves canônicas.
type ChannelCatalog struct {
	entries []channelAliases
	byAlias map[string]string
}

// NewChannelCatalog cria o catálogo padrão acrescido dos canais/apelidos extras configurados.
func NewChannelCatalog(extra map[string][]string) *ChannelCatalog {
	entries := make([]channelAliases, 0, len(defaultChannelAliases)+len(extra))
	for _, entry := range defaultChannelAliases {
		entries = append(entries, channelAliases{key: entry.key, aliases: append([]string(nil), entry.aliases...)})
	}

	extraKeys := make([]string, 0, len(extra))
	for key := range extra {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)

	for _, rawKey := range extraKeys {
		key := ChannelKey(rawKey)
		aliases := normalizeAll(extra[rawKey])

		found := false
		for i := range entries {
			if entries[i].key == key {
				entries[i].aliases = append(entries[i].aliases, aliases...)
				found = true
				break
			}
		}
		if !found && key != "" {
			entries = append(entries, channelAliases{key: key, aliases: aliases})
		}
	}

	catalog := &ChannelCatalog{entries: entries, byAlias: make(map[string]string)}
	for _, entry := range entries {
		if _, exists := catalog.byAlias[entry.key]; !exists {
			catalog.byAlias[entry.key] = entry.key
		}
		for _, alias := range entry.aliases {
			if _, exists := catalog.byAlias[alias]; !exists {
				catalog.byAlias[alias] = entry.key
			}
		}
	}

	return catalog
}

var defaultCatalog = NewChannelCatalog(nil)

// DefaultChannelCatalog retorna o catálogo sem canais extras.
func DefaultChannelCatalog() *ChannelCatalog {
	return defaultCatalog
}

// Keys retorna as chaves canônicas na ordem do catálogo.
func (c *ChannelCatalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		keys = append(keys, entry.key)
	}
	return keys
}

// Classify devolve a chave canônica de uma tag, ou "" quando a tag não é reconhecida.
func (c *ChannelCatalog) Classify(tag string) string {
	normalized := normalize(tag)
	if normalized == "" {
		return ""
	}
	return c.byAlias[normalized]
}

// ChannelKey reduz o nome de um canal ("Tel 0800", "E-commerce") à forma da chave canônica.
func ChannelKey(name string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalize(name))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}
