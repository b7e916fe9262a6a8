package retriever

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairCypherPassesCleanQuery(t *testing.T) {
	in := "MATCH (c:Company)-[r]-(p:Person) WHERE toLower(c.id) CONTAINS 'tesla' RETURN p.id, type(r) AS relationship, c.id LIMIT 100"
	out, err := RepairCypher(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRepairCypherStripsFence(t *testing.T) {
	in := "```cypher\nMATCH (n) WHERE toLower(n.id) CONTAINS 'apple' RETURN n.id LIMIT 10\n```"
	out, err := RepairCypher(in)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) WHERE toLower(n.id) CONTAINS 'apple' RETURN n.id LIMIT 10", out)
}

func TestRepairCypherWidensTypedRelationships(t *testing.T) {
	out, err := RepairCypher("MATCH (c)-[r:CEO_OF]-(p) RETURN p.id, type(r), c.id LIMIT 50")
	require.NoError(t, err)
	assert.NotContains(t, out, ":CEO_OF")
	assert.Contains(t, out, "-[r]-")

	out, err = RepairCypher("MATCH (a)-[:OWNS]->(b) RETURN a.id, b.id LIMIT 10")
	require.NoError(t, err)
	assert.NotContains(t, out, ":OWNS")
	assert.Contains(t, out, "-[r]->")
}

func TestRepairCypherAppendsLimit(t *testing.T) {
	out, err := RepairCypher("MATCH (n) RETURN n.id")
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n.id LIMIT 100", out)
}

func TestRepairCypherCapsLimit(t *testing.T) {
	out, err := RepairCypher("MATCH (n) RETURN n.id LIMIT 5000")
	require.NoError(t, err)
	assert.Contains(t, out, "LIMIT 100")
	assert.NotContains(t, out, "5000")
}

func TestRepairCypherRewritesExactIDMatch(t *testing.T) {
	out, err := RepairCypher("MATCH (c:Company {id: 'Tesla'})-[r]-(p:Person) RETURN c.id, type(r), p.id LIMIT 100")
	require.NoError(t, err)
	assert.Equal(t, "MATCH (c:Company)-[r]-(p:Person) WHERE toLower(c.id) CONTAINS 'tesla' RETURN c.id, type(r), p.id LIMIT 100", out)
}

func TestRepairCypherMergesIDMatchIntoExistingWhere(t *testing.T) {
	out, err := RepairCypher("MATCH (c:Company {id: 'Meta'})-[r]-(p) WHERE p.id <> '' RETURN p.id LIMIT 10")
	require.NoError(t, err)
	assert.Equal(t, "MATCH (c:Company)-[r]-(p) WHERE toLower(c.id) CONTAINS 'meta' AND p.id <> '' RETURN p.id LIMIT 10", out)
}

func TestRepairCypherRewritesAnonymousIDMatch(t *testing.T) {
	out, err := RepairCypher("MATCH ({id: 'SolarCity'})-[r]->(b) RETURN b.id")
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n1)-[r]->(b) WHERE toLower(n1.id) CONTAINS 'solarcity' RETURN b.id LIMIT 100", out)
}

func TestRepairCypherKeepsOptionalMatch(t *testing.T) {
	in := "OPTIONAL MATCH (n) RETURN n.id LIMIT 10"
	out, err := RepairCypher(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRepairCypherDropsLeadingProse(t *testing.T) {
	out, err := RepairCypher("Here is the query:\nMATCH (n) RETURN n.id LIMIT 10")
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n.id LIMIT 10", out)
}

func TestRepairCypherIgnoresProseMentioningMatch(t *testing.T) {
	out, err := RepairCypher("The closest match is below:\nMATCH (n) RETURN n.id LIMIT 10")
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n.id LIMIT 10", out)
}

func TestRepairCypherRejectsNonQuery(t *testing.T) {
	_, err := RepairCypher("I don't know how to answer that.")
	assert.Error(t, err)
}
