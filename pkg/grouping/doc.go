/*
Package grouping groups sequence elements by key.

ToLookup and its variants read a sequence once and return an immutable
Lookup; GroupBy and its variants return a deferred sequence of groups that
rebuilds its lookup on every traversal. Keys keep the order in which they were
first seen and elements keep their arrival order within a group:

	people := sequence.Of(
		Person{"Bart", 4}, Person{"Rob", 3}, Person{"Bill", 4},
		Person{"Scott", 5}, Person{"John", 4},
	)
	groups := grouping.GroupBy(people, func(p Person) int { return p.Letters })
	// 4: Bart Bill John
	// 3: Rob
	// 5: Scott

Lookups accept nil keys. Dictionaries do not: ToMap, ToMapSelect and
ToDictionary fail with errors.ErrNilKey on a nil key and with
errors.ErrDuplicateKey on a repeated one.
*/
package grouping
