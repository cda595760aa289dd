// Package dataprocessing turns raw program tables into the clean tables,
// the participant/program master table and the data quality report.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Cleaners: one per source (contacts, surveys, attendance, outcomes)
// 2. Master builder: aggregates and joins the clean tables
// 3. Quality reporter: row, column, missing-cell and duplicate counts
// 4. Analytics: KPIs over a master table for reporting consumers
//
// Every function here is pure: inputs are never modified and no function
// returns an error. Malformed values degrade to Null; only rows missing a
// required identifier (or, for attendance, a session date) are removed.
//
// # Usage
//
//	clean := dataprocessing.CleanTables{
//	    Contacts:   dataprocessing.CleanContacts(rawContacts),
//	    Surveys:    dataprocessing.CleanSurveys(rawSurveys),
//	    Attendance: dataprocessing.CleanAttendance(rawAttendance),
//	    Outcomes:   dataprocessing.CleanOutcomes(rawOutcomes),
//	}
//	master := dataprocessing.BuildMaster(clean)
//	reports, reportTable := dataprocessing.QualityReport(
//	    dataprocessing.NamedTable{Name: domain.TableMaster, Table: master},
//	)
//
// # Data Flow
//
//	raw tables → Cleaners → clean tables → Master builder → master table
//	                                    ↘ Quality reporter ↙
//
// # Master table rules
//
// The master table has one row per (participant_id, program_id) pair seen
// in attendance or surveys, sorted by that pair. Outcomes contribute the row
// with the highest post_score for the pair; contacts contribute email and a
// fallback city. Pairs known only from outcomes or contacts are excluded.
package dataprocessing
