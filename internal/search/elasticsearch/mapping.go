package elasticsearch

// DefaultIndexName is the default Elasticsearch index for product documents.
const DefaultIndexName = "rentmarket_products"

// buildIndexMapping returns the JSON mapping for the product index.
// Location is a geo_point and rents are nested so booking periods can
// be filtered per entry instead of across flattened arrays.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "id":               { "type": "keyword" },
      "ownerUserId":      { "type": "keyword" },
      "title":            { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "description":      { "type": "text" },
      "tags":             { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
      "price":            { "type": "double" },
      "street":           { "type": "keyword" },
      "city":             { "type": "keyword" },
      "postalCode":       { "type": "keyword" },
      "location":         { "type": "geo_point" },
      "availabilityFrom": { "type": "date" },
      "availabilityTo":   { "type": "date" },
      "rents": {
        "type": "nested",
        "properties": {
          "renterUserId":  { "type": "keyword" },
          "rentRequestId": { "type": "keyword" },
          "from":          { "type": "date" },
          "to":            { "type": "date" }
        }
      }
    }
  }
}`
}
