package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	booksTable      = "books"
	membersTable    = "members"
	borrowingsTable = "borrowings"

	bookAvailableColumn = "stock - (SELECT COUNT(*) FROM borrowings br " +
		"WHERE br.book_code = books.code AND br.returned_at IS NULL) AS available"

	memberBorrowedColumn = "(SELECT COUNT(*) FROM borrowings br " +
		"WHERE br.member_code = members.code AND br.returned_at IS NULL) AS borrowed_books"
)

var (
	bookColumns      = []string{"code", "title", "author", "stock", bookAvailableColumn, "created_at"}
	memberColumns    = []string{"code", "name", "penalty_until", memberBorrowedColumn, "created_at"}
	borrowingColumns = []string{"id", "member_code", "book_code", "borrowed_at", "returned_at"}
)

func listBooksQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(bookColumns...).From(booksTable).OrderBy("code")
}

func getBookQuery(b sq.StatementBuilderType, code string) sq.SelectBuilder {
	return b.Select(bookColumns...).From(booksTable).Where(sq.Eq{"code": code})
}

func insertBookQuery(b sq.StatementBuilderType, code, title, author string, stock int, createdAt time.Time) sq.InsertBuilder {
	return b.Insert(booksTable).
		Columns("code", "title", "author", "stock", "created_at").
		Values(code, title, author, stock, createdAt)
}

func listMembersQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(memberColumns...).From(membersTable).OrderBy("code")
}

func getMemberQuery(b sq.StatementBuilderType, code string) sq.SelectBuilder {
	return b.Select(memberColumns...).From(membersTable).Where(sq.Eq{"code": code})
}

// lockRowQuery locks a single row by code. The derived counts must be read
// by a later statement: under READ COMMITTED a FOR UPDATE select keeps the
// snapshot it started with for its subqueries, so a count read in the same
// statement can miss borrowings committed while it waited for the lock.
func lockRowQuery(b sq.StatementBuilderType, table, code string) sq.SelectBuilder {
	return b.Select("code").From(table).Where(sq.Eq{"code": code}).Suffix("FOR UPDATE")
}

func insertMemberQuery(b sq.StatementBuilderType, code, name string, createdAt time.Time) sq.InsertBuilder {
	return b.Insert(membersTable).
		Columns("code", "name", "created_at").
		Values(code, name, createdAt)
}

func setPenaltyQuery(b sq.StatementBuilderType, code string, until time.Time) sq.UpdateBuilder {
	return b.Update(membersTable).Set("penalty_until", until).Where(sq.Eq{"code": code})
}

func clearExpiredPenaltiesQuery(b sq.StatementBuilderType, now time.Time) sq.UpdateBuilder {
	return b.Update(membersTable).Set("penalty_until", nil).Where(sq.LtOrEq{"penalty_until": now})
}

func insertBorrowingQuery(b sq.StatementBuilderType, id, memberCode, bookCode string, borrowedAt time.Time) sq.InsertBuilder {
	return b.Insert(borrowingsTable).
		Columns("id", "member_code", "book_code", "borrowed_at").
		Values(id, memberCode, bookCode, borrowedAt)
}

func findActiveBorrowingQuery(b sq.StatementBuilderType, memberCode, bookCode string) sq.SelectBuilder {
	return b.Select(borrowingColumns...).
		From(borrowingsTable).
		Where(sq.Eq{"member_code": memberCode, "book_code": bookCode, "returned_at": nil}).
		OrderBy("borrowed_at").
		Limit(1)
}

func listActiveBorrowingsQuery(b sq.StatementBuilderType, memberCode string) sq.SelectBuilder {
	return b.Select(borrowingColumns...).
		From(borrowingsTable).
		Where(sq.Eq{"member_code": memberCode, "returned_at": nil}).
		OrderBy("borrowed_at")
}

func countActiveBorrowingsQuery(b sq.StatementBuilderType, memberCode string) sq.SelectBuilder {
	return b.Select("COUNT(*)").
		From(borrowingsTable).
		Where(sq.Eq{"member_code": memberCode, "returned_at": nil})
}

func markReturnedQuery(b sq.StatementBuilderType, id string, returnedAt time.Time) sq.UpdateBuilder {
	return b.Update(borrowingsTable).
		Set("returned_at", returnedAt).
		Where(sq.Eq{"id": id, "returned_at": nil})
}
