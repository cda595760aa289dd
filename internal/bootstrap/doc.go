// Package bootstrap generates deliberately messy sample raw tables so the
// pipeline can run on a fresh checkout.
//
// The four files mimic real exports: a CRM CSV with repeated participant
// ids and city spellings such as "NYC" and "Bk", a survey CSV with mixed
// date formats and missing scores, an attendance workbook with 1/0/Yes/No/Y/N
// flags, and an outcomes workbook with gaps in the post scores. Header names
// differ from the canonical schema on purpose.
//
// Output is a pure function of the seed: the same seed always writes the
// same cell values.
package bootstrap
