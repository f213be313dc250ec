package calcdb

import (
	"math"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Index is a full-text index over calculations, used to search a user's
// history by the words and numbers in their expressions.
type Index struct {
	idx bleve.Index
}

// searchableCalculation is the document stored per calculation.
type searchableCalculation struct {
	AuthorID   string
	ChannelID  string
	Expression string
	Result     float64
	Failed     bool
}

// OpenIndex opens the index at path, creating it if it does not exist. An
// empty path gives an in-memory index.
func OpenIndex(path string) (*Index, error) {
	if path == "" {
		m, err := buildIndexMapping()
		if err != nil {
			return nil, err
		}
		idx, err := bleve.NewMemOnly(m)
		if err != nil {
			return nil, err
		}
		return &Index{idx: idx}, nil
	}

	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		m, merr := buildIndexMapping()
		if merr != nil {
			return nil, merr
		}
		idx, err = bleve.New(path, m)
	}
	if err != nil {
		return nil, err
	}
	return &Index{idx: idx}, nil
}

func buildIndexMapping() (mapping.IndexMapping, error) {
	// exact match only, for ids
	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	// splits "log(2)+pi" into log, 2, pi
	expressionFieldMapping := bleve.NewTextFieldMapping()
	expressionFieldMapping.Analyzer = standard.Name

	numericFieldMapping := bleve.NewNumericFieldMapping()
	booleanFieldMapping := bleve.NewBooleanFieldMapping()

	calcMapping := bleve.NewDocumentMapping()
	calcMapping.AddFieldMappingsAt("AuthorID", keywordFieldMapping)
	calcMapping.AddFieldMappingsAt("ChannelID", keywordFieldMapping)
	calcMapping.AddFieldMappingsAt("Expression", expressionFieldMapping)
	calcMapping.AddFieldMappingsAt("Result", numericFieldMapping)
	calcMapping.AddFieldMappingsAt("Failed", booleanFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("Calculation", calcMapping)
	indexMapping.DefaultMapping = calcMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping, nil
}

// Add indexes c under its ID. Saving the calculation first assigns the ID.
func (i *Index) Add(c Calculation) error {
	result := c.Result
	if math.IsNaN(result) {
		result = 0
	}
	return i.idx.Index(strconv.FormatInt(c.ID, 10), searchableCalculation{
		AuthorID:   c.AuthorID,
		ChannelID:  c.ChannelID,
		Expression: c.Expression,
		Result:     result,
		Failed:     c.Err != "",
	})
}

// Delete removes the calculation with id from the index.
func (i *Index) Delete(id int64) error {
	return i.idx.Delete(strconv.FormatInt(id, 10))
}

// Search returns the IDs of the author's calculations whose expression
// matches terms, best match first.
func (i *Index) Search(authorID, terms string, limit int) ([]int64, error) {
	author := bleve.NewTermQuery(authorID)
	author.SetField("AuthorID")
	expr := bleve.NewMatchQuery(terms)
	expr.SetField("Expression")

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(author, expr), limit, 0, false)
	res, err := i.idx.Search(req)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (i *Index) Close() error {
	return i.idx.Close()
}
