package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildaide/core/costengine"
	"buildaide/core/engine"
	"buildaide/core/types"
)

func estimateResult(t *testing.T) *engine.EstimateResult {
	t.Helper()
	res, err := engine.NewService(nil).Estimate(t.Context(), types.CostParameters{
		ProjectType:     types.ProjectKitchenRemodel,
		Area:            200,
		MaterialQuality: types.QualityStandard,
		ZipCode:         "10001",
	})
	require.NoError(t, err)
	return res
}

func TestGet(t *testing.T) {
	f, err := Get("cli")
	require.NoError(t, err)
	assert.Equal(t, FormatCLI, f.Format())

	f, err = Get("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f.Format())

	_, err = Get("html")
	assert.Error(t, err)
}

func TestCLI_Estimate(t *testing.T) {
	f, _ := Get("cli")
	var buf bytes.Buffer
	require.NoError(t, f.Estimate(&buf, estimateResult(t)))

	out := buf.String()
	assert.Contains(t, out, "CONSTRUCTION COST ESTIMATE")
	assert.Contains(t, out, "$52,650")
	assert.Contains(t, out, "Materials")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, costengine.InsightPremium)
	assert.Contains(t, out, "1.35")
}

func TestCLI_WhatIf(t *testing.T) {
	res, err := engine.NewService(nil).WhatIf(t.Context(), types.CostParameters{
		ProjectType:     types.ProjectKitchenRemodel,
		Area:            200,
		MaterialQuality: types.QualityStandard,
	})
	require.NoError(t, err)

	f, _ := Get("cli")
	var buf bytes.Buffer
	require.NoError(t, f.WhatIf(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "$39,000")
	assert.Contains(t, out, "Budget materials")
	assert.Contains(t, out, "-18,600")
	assert.Contains(t, out, "+37,800")
}

func TestCLI_Tables(t *testing.T) {
	f, _ := Get("cli")
	var buf bytes.Buffer
	require.NoError(t, f.Tables(&buf, costengine.DefaultTables()))

	out := buf.String()
	assert.Contains(t, out, "kitchen-remodel")
	assert.Contains(t, out, "6+ months")
	assert.Contains(t, out, "94102")
	assert.Contains(t, out, "Default crew: 2 workers, 24 hours, $55/hour")
}

func TestJSON_Estimate(t *testing.T) {
	f, _ := Get("json")
	var buf bytes.Buffer
	require.NoError(t, f.Estimate(&buf, estimateResult(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "breakdown")
	assert.Contains(t, decoded, "regionalInsight")
	assert.Contains(t, decoded, "metadata")

	breakdown := decoded["breakdown"].(map[string]any)
	assert.Equal(t, float64(52650), breakdown["total"])
}

func TestJSON_Region(t *testing.T) {
	f, _ := Get("json")
	var buf bytes.Buffer
	require.NoError(t, f.Region(&buf, &engine.RegionResult{ZipCode: "39201", Multiplier: 0.85, Insight: costengine.InsightValue}))
	assert.JSONEq(t, `{"zipCode":"39201","multiplier":0.85,"insight":"`+costengine.InsightValue+`"}`, buf.String())
}
