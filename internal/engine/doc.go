// Package engine computes the fleet KPIs that are not emissions based:
// cost-per-mile profitability and its day-of-week trend, electric versus
// combustion cost savings, income per passenger, average cost per fuel type
// and the PM2.5 map points. It also derives the filter domains (date bounds,
// mileage bounds, unique manufacturers, trip types, regions and years).
//
// Every function is pure over the loaded records and safe for concurrent use.
package engine
