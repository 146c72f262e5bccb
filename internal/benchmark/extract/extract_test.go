package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchmark-service/internal/benchmark/model"
)

const storePage = `MINIMUM:
Requires a 64-bit processor and operating system
OS: Windows 10
Processor: Intel Core i5-6600K or AMD Ryzen 5 1600
Memory: 8 GB RAM
Graphics: NVIDIA GeForce GTX 970
Storage: 50 GB available space

RECOMMENDED:
Requires a 64-bit processor and operating system
Processor: Intel Core i7-8700K
Memory: 16 GB RAM
Graphics: NVIDIA GeForce GTX 1080 Ti
Storage: 1 TB available space`

func TestParse_StorePage(t *testing.T) {
	reqs := Parse(storePage)
	require.Len(t, reqs, 2)

	minReq, recReq := reqs[0], reqs[1]
	assert.Equal(t, model.Minimum, minReq.Type)
	assert.Equal(t, "Intel Core i5-6600K or AMD Ryzen 5 1600", minReq.CPUName)
	assert.Equal(t, "NVIDIA GeForce GTX 970", minReq.GPUName)
	assert.Equal(t, 8, minReq.RAMGB)
	assert.Equal(t, 50, minReq.StorageGB)
	assert.Nil(t, minReq.CPUScore)

	assert.Equal(t, model.Recommended, recReq.Type)
	assert.Equal(t, "Intel Core i7-8700K", recReq.CPUName)
	assert.Equal(t, "NVIDIA GeForce GTX 1080 Ti", recReq.GPUName)
	assert.Equal(t, 16, recReq.RAMGB)
	assert.Equal(t, 1024, recReq.StorageGB)
}

func TestParse_LabeledLines(t *testing.T) {
	text := "Minimum CPU: Core 2 Duo\nMinimum GPU: GeForce 8800 GT\nMinimum RAM: 2GB\n" +
		"Recommended CPU: Core i5-2500\nRecommended GPU: GTX 660\nRecommended RAM: 4 gb\nRecommended Disk: 20 GB"
	reqs := Parse(text)

	assert.Equal(t, "Core 2 Duo", reqs[0].CPUName)
	assert.Equal(t, "GeForce 8800 GT", reqs[0].GPUName)
	assert.Equal(t, 2, reqs[0].RAMGB)
	assert.Equal(t, 0, reqs[0].StorageGB)

	assert.Equal(t, "Core i5-2500", reqs[1].CPUName)
	assert.Equal(t, "GTX 660", reqs[1].GPUName)
	assert.Equal(t, 4, reqs[1].RAMGB)
	assert.Equal(t, 20, reqs[1].StorageGB)
}

func TestParse_NoRecommendedSection(t *testing.T) {
	reqs := Parse("Processor: Pentium 4\nMemory: 1 GB")
	assert.Equal(t, "Pentium 4", reqs[0].CPUName)
	assert.Equal(t, 1, reqs[0].RAMGB)
	assert.Empty(t, reqs[1].CPUName)
	assert.Zero(t, reqs[1].RAMGB)
}

func TestSizeGB(t *testing.T) {
	n, ok := SizeGB("8 GB RAM")
	assert.True(t, ok)
	assert.Equal(t, 8, n)

	n, ok = SizeGB("2TB SSD")
	assert.True(t, ok)
	assert.Equal(t, 2048, n)

	_, ok = SizeGB("512 MB")
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	a := []model.Requirement{{CPUName: "i5", GPUName: "GTX 970", RAMGB: 8, StorageGB: 50}}
	b := []model.Requirement{{CPUName: "i5", GPUName: "GTX 980", RAMGB: 16, StorageGB: 50}, {}}

	diffs := Compare(a, b)
	assert.Equal(t, []Diff{
		{Index: 0, Field: "gpu", A: "GTX 970", B: "GTX 980"},
		{Index: 0, Field: "ram", A: "8", B: "16"},
	}, diffs)
	assert.Empty(t, Compare(a, a))
}
