package scoring

import (
	"fmt"
	"strings"

	"github.com/dbv-club/championship-system/models"
)

// DemeritRule is one entry of the infraction table: a named type, its
// severity tier and the (negative) point value it costs.
type DemeritRule struct {
	Type   string
	Tier   models.DemeritTier
	Points int
}

// demeritTable lists the 32 recognized infractions. The tier is also
// encoded as the type-name prefix; TierFromType derives it from there
// and the two must agree (checked by tests, a mismatch is a data bug).
var demeritTable = []DemeritRule{
	// D1: leves
	{"d1_uniforme_incompleto", models.TierD1, -5},
	{"d1_atraso_chegada", models.TierD1, -5},
	{"d1_conversa_durante_instrucao", models.TierD1, -5},
	{"d1_material_esquecido", models.TierD1, -5},
	{"d1_lenco_ausente", models.TierD1, -10},
	{"d1_desordem_na_fila", models.TierD1, -10},
	{"d1_sujeira_area_unidade", models.TierD1, -10},
	{"d1_uso_celular_sem_permissao", models.TierD1, -10},
	// D2: médias
	{"d2_ausencia_sem_justificativa", models.TierD2, -10},
	{"d2_saida_sem_autorizacao", models.TierD2, -10},
	{"d2_brincadeira_perigosa", models.TierD2, -20},
	{"d2_desobediencia_conselheiro", models.TierD2, -20},
	{"d2_linguagem_inadequada", models.TierD2, -20},
	{"d2_dano_material_leve", models.TierD2, -20},
	{"d2_perturbacao_cerimonia", models.TierD2, -10},
	{"d2_recusa_atividade", models.TierD2, -10},
	// D3: graves (exigem descrição)
	{"d3_desrespeito_lideranca", models.TierD3, -30},
	{"d3_briga_discussao", models.TierD3, -50},
	{"d3_dano_material_grave", models.TierD3, -50},
	{"d3_saida_acampamento_noturna", models.TierD3, -50},
	{"d3_bullying_colega", models.TierD3, -50},
	{"d3_mentira_lideranca", models.TierD3, -30},
	{"d3_apropriacao_indevida", models.TierD3, -50},
	{"d3_conduta_inadequada_publico", models.TierD3, -30},
	// D4: gravíssimas (exigem descrição)
	{"d4_agressao_fisica", models.TierD4, -100},
	{"d4_porte_material_proibido", models.TierD4, -100},
	{"d4_fuga_evento", models.TierD4, -70},
	{"d4_vandalismo", models.TierD4, -100},
	{"d4_assedio", models.TierD4, -100},
	{"d4_furto", models.TierD4, -100},
	{"d4_uso_substancia_proibida", models.TierD4, -100},
	{"d4_comportamento_risco_vida", models.TierD4, -70},
}

var demeritIndex = func() map[string]DemeritRule {
	idx := make(map[string]DemeritRule, len(demeritTable))
	for _, r := range demeritTable {
		idx[r.Type] = r
	}
	return idx
}()

// DemeritRuleFor resolves the rule for a demerit type name.
func DemeritRuleFor(demeritType string) (DemeritRule, error) {
	rule, ok := demeritIndex[demeritType]
	if !ok {
		return DemeritRule{}, fmt.Errorf("unknown demerit type %q", demeritType)
	}
	return rule, nil
}

// TierFromType derives the severity tier from the type-name prefix
// (the part before the first underscore, upper-cased).
func TierFromType(demeritType string) (models.DemeritTier, error) {
	prefix, _, found := strings.Cut(demeritType, "_")
	if !found {
		return "", fmt.Errorf("demerit type %q has no tier prefix", demeritType)
	}
	tier := models.DemeritTier(strings.ToUpper(prefix))
	switch tier {
	case models.TierD1, models.TierD2, models.TierD3, models.TierD4:
		return tier, nil
	default:
		return "", fmt.Errorf("demerit type %q has invalid tier prefix %q", demeritType, prefix)
	}
}

// RequiresDescription reports whether the tier demands a written
// justification at creation time.
func RequiresDescription(tier models.DemeritTier) bool {
	return tier == models.TierD3 || tier == models.TierD4
}

// DemeritTypes returns the full table, for listing endpoints and tests.
func DemeritTypes() []DemeritRule {
	out := make([]DemeritRule, len(demeritTable))
	copy(out, demeritTable)
	return out
}
