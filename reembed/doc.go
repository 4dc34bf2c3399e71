// Package reembed rebuilds the embedding vectors for every case in the
// corpus, typically after switching embedding models.
//
// The Reembedder walks the corpus in batches, regenerates embeddings
// with retry and exponential backoff, normalizes the vectors for cosine
// similarity, and reports progress to a writer.
package reembed
