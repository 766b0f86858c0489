package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestQuotaTable_Rule testa o lookup de regras com fallback para a default
func TestQuotaTable_Rule(t *testing.T) {
	table := DefaultQuotaTable()

	t.Run("Should return the class-specific rule", func(t *testing.T) {
		rule := table.Rule(ClassAIWorkoutPlan)
		assert.Equal(t, ClassAIWorkoutPlan, rule.Class)
		assert.Equal(t, 5, rule.Rate.Count)
		assert.Equal(t, 24*time.Hour, rule.Rate.Window)
		assert.Equal(t, ScopeUser, rule.Scope)
	})

	t.Run("Should fall back to the default rule for unknown classes", func(t *testing.T) {
		rule := table.Rule(EndpointClass("not_a_class"))
		assert.Equal(t, ClassDefault, rule.Class)
		assert.Equal(t, 1000, rule.Rate.Count)
	})
}

// TestDefaultQuotaTable testa as cotas e escopos padrão de cada classe
func TestDefaultQuotaTable(t *testing.T) {
	table := DefaultQuotaTable()

	tests := []struct {
		class EndpointClass
		scope LimiterScope
		rate  string
	}{
		{ClassAuthRegister, ScopeIP, "5/hour"},
		{ClassAuthLogin, ScopeIP, "10/hour"},
		{ClassAuthResetPassword, ScopeIP, "3/hour"},
		{ClassAIWorkoutPlan, ScopeUser, "5/day"},
		{ClassAINutritionPlan, ScopeUser, "5/day"},
		{ClassDataPost, ScopeUser, "100/hour"},
		{ClassDataGet, ScopeUser, "200/hour"},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			rule := table.Rule(tt.class)
			assert.Equal(t, tt.scope, rule.Scope)
			assert.Equal(t, tt.rate, rule.Rate.String())
			assert.NotEmpty(t, rule.Description)
		})
	}

	assert.Equal(t, "1000/hour", table.Default.Rate.String())
}

// TestExemptionList testa a lista estática de IPs isentos
func TestExemptionList(t *testing.T) {
	list := NewExemptionList([]string{"127.0.0.1", "::1", "10.0.0.5"})

	assert.True(t, list.Contains("127.0.0.1"))
	assert.True(t, list.Contains("::1"))
	assert.True(t, list.Contains("10.0.0.5"))
	assert.False(t, list.Contains("192.168.1.1"))
	assert.False(t, list.Contains(""))

	t.Run("Should handle empty list", func(t *testing.T) {
		empty := NewExemptionList(nil)
		assert.False(t, empty.Contains("127.0.0.1"))
	})

	t.Run("Should handle nil list", func(t *testing.T) {
		var nilList *ExemptionList
		assert.False(t, nilList.Contains("127.0.0.1"))
	})
}
