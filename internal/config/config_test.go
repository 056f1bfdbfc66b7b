package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannelAliases(t *testing.T) {
	t.Run("vazio retorna mapa vazio", func(t *testing.T) {
		aliases, err := ParseChannelAliases("  ")
		require.NoError(t, err)
		assert.Empty(t, aliases)
	})

	t.Run("múltiplos canais e apelidos", func(t *testing.T) {
		aliases, err := ParseChannelAliases("WhatsApp=whatsapp| Zap ;tiktok=tik tok")
		require.NoError(t, err)
		assert.Equal(t, []string{"whatsapp", "zap"}, aliases["whatsapp"])
		assert.Equal(t, []string{"tik tok"}, aliases["tiktok"])
	})

	t.Run("entrada sem chave é rejeitada", func(t *testing.T) {
		_, err := ParseChannelAliases("=zap")
		assert.Error(t, err)
	})
}
