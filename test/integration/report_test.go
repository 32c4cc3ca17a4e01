package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReports(t *testing.T) {
	RequireServer(t)
	token := AdminLogin(t)

	// Garante pelo menos uma venda no período para os relatórios terem linhas.
	bookID := CreateTestBook(t, token, GenerateTestTitle("Relatório"), 50.0, 10)
	resp := PostJSON(t, BaseURL+"/vendas", map[string]interface{}{
		"itens": []map[string]interface{}{
			{"livro_id": bookID, "quantidade": 2, "preco_unitario": 50.0},
		},
		"subtotal": 100.0,
		"desconto": 0,
		"total":    100.0,
		"pagamentos": []map[string]interface{}{
			{"forma": "pix", "valor": 100.0},
		},
	}, "")
	require.Equal(t, 0, resp.Code, resp.Message)

	t.Run("por-pagamento agrupa por dia e forma", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/relatorios/por-pagamento", token)
		require.Equal(t, 0, resp.Code, resp.Message)

		var data struct {
			Rows []struct {
				Date       string  `json:"date"`
				Forma      string  `json:"forma"`
				NumVendas  int     `json:"num_vendas"`
				ValorTotal float64 `json:"valor_total"`
			} `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.NotEmpty(t, data.Rows)

		found := false
		for _, row := range data.Rows {
			assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, row.Date)
			if row.Forma == "Pix" {
				found = true
			}
		}
		assert.True(t, found, "deveria haver pelo menos uma linha Pix")
	})

	t.Run("top-livros inclui o livro vendido", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/relatorios/top-livros", token)
		require.Equal(t, 0, resp.Code, resp.Message)

		var rows []struct {
			ID           uint   `json:"id"`
			Titulo       string `json:"titulo"`
			TotalVendido int    `json:"total_vendido"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &rows))
		require.NotEmpty(t, rows)

		found := false
		for _, row := range rows {
			if row.ID == bookID {
				found = true
				assert.GreaterOrEqual(t, row.TotalVendido, 2)
			}
		}
		assert.True(t, found, "livro vendido deveria aparecer no ranking")
	})

	t.Run("totais-gerais são consistentes", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/relatorios/totais-gerais", token)
		require.Equal(t, 0, resp.Code, resp.Message)

		var data struct {
			TotalVendasIncl int `json:"total_vendas_incl_cortesia"`
			TotalLivrosIncl int `json:"total_livros_incl_cortesia"`
			TotalVendasSem  int `json:"total_vendas_sem_cortesia"`
			TotalLivrosSem  int `json:"total_livros_sem_cortesia"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))

		assert.GreaterOrEqual(t, data.TotalVendasIncl, data.TotalVendasSem)
		assert.GreaterOrEqual(t, data.TotalLivrosIncl, data.TotalLivrosSem)
		assert.GreaterOrEqual(t, data.TotalVendasIncl, 1)
	})

	t.Run("por-dia-vendas traz contagens por dia", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/relatorios/por-dia-vendas", token)
		require.Equal(t, 0, resp.Code, resp.Message)

		var data struct {
			Rows []struct {
				Date string `json:"date"`
			} `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.NotEmpty(t, data.Rows)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, data.Rows[0].Date)
	})

	t.Run("voucher-seduc responde com totais", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/relatorios/voucher-seduc", token)
		require.Equal(t, 0, resp.Code, resp.Message)

		var data struct {
			NumVendas         int     `json:"num_vendas"`
			TotalBruto        float64 `json:"total_bruto"`
			TotalReembolsavel float64 `json:"total_reembolsavel"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.LessOrEqual(t, data.TotalReembolsavel, data.TotalBruto+0.001)
	})
}
