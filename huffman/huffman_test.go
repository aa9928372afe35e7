package huffman_test

import (
	"bufio"
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atiedebee/huff/bitstream"
	"github.com/atiedebee/huff/huffman"
)

const randSeed = 0x5a025ca11825a5e7

func count(t *testing.T, data []byte) huffman.FrequencyTable {
	t.Helper()
	ft, err := huffman.CountFrequencies(bytes.NewReader(data))
	require.NoError(t, err)
	return ft
}

func codesFor(t *testing.T, ft *huffman.FrequencyTable) huffman.CodeTable {
	t.Helper()
	root, err := huffman.BuildTree(ft)
	require.NoError(t, err)
	return huffman.BuildCodeTable(root)
}

func encode(t *testing.T, data []byte) (huffman.FrequencyTable, []byte) {
	t.Helper()
	ft := count(t, data)
	codes := codesFor(t, &ft)

	var packed bytes.Buffer
	n, err := huffman.Encode(bytes.NewReader(data), &codes, bitstream.NewWriter(&packed))
	require.NoError(t, err)
	require.EqualValues(t, len(data), n)
	return ft, packed.Bytes()
}

func decode(ft *huffman.FrequencyTable, packed []byte) ([]byte, error) {
	var out bytes.Buffer
	w := bufio.NewWriter(&out)
	_, err := huffman.Decode(ft, bitstream.NewReader(bytes.NewReader(packed)), w)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return out.Bytes(), err
}

func randomInputs() [][]byte {
	rng := rand.New(rand.NewSource(randSeed))
	inputs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("zzzzzzzzzzzz"),
		[]byte("abracadabra"),
		[]byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)),
	}

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	inputs = append(inputs, all)

	for i := 0; i < 10; i++ {
		data := make([]byte, rng.Intn(4096))
		// Skewed alphabets give deep, unbalanced trees.
		alphabet := 1 + rng.Intn(256)
		for j := range data {
			data[j] = byte(rng.Intn(alphabet) * rng.Intn(alphabet) % 256)
		}
		inputs = append(inputs, data)
	}
	return inputs
}

func TestCountFrequencies(t *testing.T) {
	for _, data := range randomInputs() {
		ft := count(t, data)
		require.EqualValues(t, len(data), ft.Total())
		require.EqualValues(t, 1, ft[huffman.EOF])
		require.NoError(t, ft.Validate())
	}

	ft := count(t, []byte{65, 66, 65, 65})
	require.EqualValues(t, 3, ft['A'])
	require.EqualValues(t, 1, ft['B'])
	require.Equal(t, 3, ft.Distinct())
}

func TestValidateRejectsBadSentinel(t *testing.T) {
	var ft huffman.FrequencyTable
	ft['x'] = 4
	require.ErrorIs(t, ft.Validate(), huffman.ErrInvalidTable)

	ft[huffman.EOF] = 256
	require.ErrorIs(t, ft.Validate(), huffman.ErrInvalidTable)
}

func TestBuildTreeEmptyTable(t *testing.T) {
	var ft huffman.FrequencyTable
	_, err := huffman.BuildTree(&ft)
	require.ErrorIs(t, err, huffman.ErrInvalidTable)
}

func TestConcreteScenario(t *testing.T) {
	data := []byte{65, 66, 65, 65}
	ft := count(t, data)

	root, err := huffman.BuildTree(&ft)
	require.NoError(t, err)
	require.EqualValues(t, 5, root.Weight)
	require.Equal(t, 3, root.Leaves())

	// B and EOF tie at weight 1; B entered the queue first.
	require.EqualValues(t, 2, root.Left.Weight)
	require.Equal(t, huffman.Symbol('B'), root.Left.Left.Symbol)
	require.Equal(t, huffman.EOF, root.Left.Right.Symbol)
	require.Equal(t, huffman.Symbol('A'), root.Right.Symbol)

	codes := huffman.BuildCodeTable(root)
	require.Equal(t, "1", codes['A'].String())
	require.Equal(t, "00", codes['B'].String())
	require.Equal(t, "01", codes[huffman.EOF].String())
	require.Nil(t, codes['C'])

	_, packed := encode(t, data)
	require.Equal(t, []byte{0x9a}, packed)

	got, err := decode(&ft, packed)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestBuildTreeDeterministic(t *testing.T) {
	for _, data := range randomInputs() {
		ft := count(t, data)
		a, err := huffman.BuildTree(&ft)
		require.NoError(t, err)
		b, err := huffman.BuildTree(&ft)
		require.NoError(t, err)
		require.Equal(t, a, b)
		require.Equal(t, ft.Distinct(), a.Leaves())
	}
}

func TestCodesPrefixFree(t *testing.T) {
	for _, data := range randomInputs() {
		ft := count(t, data)
		codes := codesFor(t, &ft)

		for s := range codes {
			require.Equal(t, ft[s] != 0, codes[s] != nil, "symbol %d", s)
		}
		for i, ci := range codes {
			for j, cj := range codes {
				if i == j || ci == nil || cj == nil {
					continue
				}
				require.False(t, strings.HasPrefix(cj.String(), ci.String()),
					"code %v of %d prefixes code %v of %d", ci, i, cj, j)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for i, data := range randomInputs() {
		ft, packed := encode(t, data)
		got, err := decode(&ft, packed)
		require.NoError(t, err, "input %d", i)
		require.Equal(t, len(data), len(got), "input %d", i)
		require.True(t, bytes.Equal(data, got), "input %d", i)
	}
}

func TestSingleLeafTree(t *testing.T) {
	ft := count(t, nil)
	root, err := huffman.BuildTree(&ft)
	require.NoError(t, err)
	require.True(t, root.IsLeaf())
	require.Equal(t, huffman.EOF, root.Symbol)

	codes := huffman.BuildCodeTable(root)
	require.Equal(t, "0", codes[huffman.EOF].String())

	_, packed := encode(t, nil)
	require.Equal(t, []byte{0x00}, packed)

	got, err := decode(&ft, packed)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRepeatedByte(t *testing.T) {
	data := bytes.Repeat([]byte{'z'}, 100)
	ft, packed := encode(t, data)

	codes := codesFor(t, &ft)
	require.Equal(t, "0", codes[huffman.EOF].String())
	require.Equal(t, "1", codes['z'].String())
	require.Len(t, packed, 13)

	got, err := decode(&ft, packed)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestDecodeTruncated(t *testing.T) {
	data := []byte("mississippi river")
	ft, packed := encode(t, data)

	got, err := decode(&ft, packed[:len(packed)-1])
	require.ErrorIs(t, err, huffman.ErrTruncated)
	require.True(t, bytes.HasPrefix(data, got))

	_, err = decode(&ft, nil)
	require.ErrorIs(t, err, huffman.ErrTruncated)
}

func TestDecodeRejectsInvalidTable(t *testing.T) {
	ft, packed := encode(t, []byte("abc"))
	ft[huffman.EOF] = 0
	_, err := decode(&ft, packed)
	require.ErrorIs(t, err, huffman.ErrInvalidTable)
}

func TestEncodeMissingCode(t *testing.T) {
	ft := count(t, []byte("ab"))
	codes := codesFor(t, &ft)

	var packed bytes.Buffer
	n, err := huffman.Encode(bytes.NewReader([]byte("abc")), &codes, bitstream.NewWriter(&packed))
	require.ErrorIs(t, err, huffman.ErrMissingCode)
	require.EqualValues(t, 2, n)
}

func TestPrintTree(t *testing.T) {
	ft := count(t, []byte{65, 66, 65, 65})
	root, err := huffman.BuildTree(&ft)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, huffman.PrintTree(&sb, root))

	want := "" +
		"        /--'B' (1)\n" +
		"    /--<\n" +
		"        \\--EOF (1)\n" +
		"---<\n" +
		"    \\--'A' (3)\n"
	require.Equal(t, want, sb.String())

	empty := count(t, nil)
	leaf, err := huffman.BuildTree(&empty)
	require.NoError(t, err)
	sb.Reset()
	require.NoError(t, huffman.PrintTree(&sb, leaf))
	require.Equal(t, "---EOF (1)\n", sb.String())
}
