// Command bookdup finds duplicate and near-duplicate records in a book
// catalog. It groups records by title/author similarity, shared identifiers,
// or identical format content, manages the exemption list that silences
// known false positives, and reports spelling variations within author,
// series, publisher, and tag values.
package main
