package script_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dawnzzz/simple-sets/database"
	"github.com/dawnzzz/simple-sets/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, src string) string {
	t.Helper()

	server := database.NewStandaloneServer()
	defer server.Close()

	var out bytes.Buffer
	runner := script.MakeRunner(server, &out)
	require.NoError(t, runner.Run(strings.NewReader(src)))

	return out.String()
}

func TestRunnerDefinitionsAndQueries(t *testing.T) {
	src := `# three sets, then queries
A 3
1 2 3
B 3
2 3 4

Empty 0
Q
print A
union A B
size B
issubset A B
isequal A A
powerset Empty
cartesian A B
names
has C
`

	expected := strings.Join([]string{
		"A = {1, 2, 3}",
		"(A union B) = {1, 2, 3, 4}",
		"(integer) 3",
		"(integer) 0",
		"(integer) 1",
		"1) {}",
		"A × B = {(1, 2), (1, 3), (1, 4), (2, 2), (2, 3), (2, 4), (3, 2), (3, 3), (3, 4)}",
		"1) A\n2) B\n3) Empty",
		"(integer) 0",
	}, "\n") + "\n"

	assert.Equal(t, expected, runScript(t, src))
}

func TestRunnerDefinitionsAreSilent(t *testing.T) {
	src := `A 2
1 2
Q
`

	assert.Equal(t, "", runScript(t, src))
}

func TestRunnerReportsBadDefinitions(t *testing.T) {
	src := `A 2
1 2
oops
C notanumber
D 2
x y
Q
names
`

	expected := strings.Join([]string{
		"(error) ERR invalid set definition 'oops'",
		"(error) ERR invalid element count 'notanumber'",
		"(error) ERR value is not an integer or out of range",
		"1) A",
	}, "\n") + "\n"

	assert.Equal(t, expected, runScript(t, src))
}

func TestRunnerContinuesAfterFailedQuery(t *testing.T) {
	src := `A 1
7
Q
print Missing
xor A A
print A
`

	expected := strings.Join([]string{
		"(error) ERR set 'Missing': set not found",
		"(error) ERR unknown command 'xor'",
		"A = {7}",
	}, "\n") + "\n"

	assert.Equal(t, expected, runScript(t, src))
}

func TestRunnerStopsAtSecondQ(t *testing.T) {
	src := `A 1
7
Q
print A
Q
print A
`

	assert.Equal(t, "A = {7}\n", runScript(t, src))
}

func TestRunnerMutatingQueries(t *testing.T) {
	src := `A 2
1 2
Q
insert A 3
store D A union A
print D
clear
names
`

	expected := strings.Join([]string{
		"OK",
		"OK",
		"D = {1, 2, 3}",
		"OK",
		"(empty list or set)",
	}, "\n") + "\n"

	assert.Equal(t, expected, runScript(t, src))
}
