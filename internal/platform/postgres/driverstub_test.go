package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
)

// The script driver serves pre-programmed replies through database/sql,
// so the stores' query construction and error mapping can be exercised
// without a live server. Every query and exec is recorded with its
// arguments for assertions.

type scriptedCall struct {
	query string
	args  []driver.Value
}

type queryReply struct {
	rows *scriptRows
	err  error
}

type execReply struct {
	result driver.Result
	err    error
}

type scriptConn struct {
	calls   []scriptedCall
	queries []queryReply
	execs   []execReply
}

var (
	_ driver.Conn           = (*scriptConn)(nil)
	_ driver.QueryerContext = (*scriptConn)(nil)
	_ driver.ExecerContext  = (*scriptConn)(nil)
)

func (c *scriptConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not scripted")
}

func (c *scriptConn) Close() error { return nil }

func (c *scriptConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not scripted")
}

func (c *scriptConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.record(query, args)
	if len(c.queries) == 0 {
		return nil, errors.New("unscripted query: " + query)
	}
	reply := c.queries[0]
	c.queries = c.queries[1:]
	if reply.err != nil {
		return nil, reply.err
	}
	return reply.rows, nil
}

func (c *scriptConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.record(query, args)
	if len(c.execs) == 0 {
		return nil, errors.New("unscripted exec: " + query)
	}
	reply := c.execs[0]
	c.execs = c.execs[1:]
	if reply.err != nil {
		return nil, reply.err
	}
	return reply.result, nil
}

func (c *scriptConn) record(query string, args []driver.NamedValue) {
	vals := make([]driver.Value, len(args))
	for i, a := range args {
		vals[i] = a.Value
	}
	c.calls = append(c.calls, scriptedCall{query: query, args: vals})
}

type scriptRows struct {
	cols []string
	data [][]driver.Value
}

func (r *scriptRows) Columns() []string { return r.cols }

func (r *scriptRows) Close() error { return nil }

func (r *scriptRows) Next(dest []driver.Value) error {
	if len(r.data) == 0 {
		return io.EOF
	}
	copy(dest, r.data[0])
	r.data = r.data[1:]
	return nil
}

type scriptConnector struct {
	conn *scriptConn
}

func (c *scriptConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }

func (c *scriptConnector) Driver() driver.Driver { return scriptDriver{} }

type scriptDriver struct{}

func (scriptDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through a connector")
}

// scriptDB wraps a scripted connection in a *sql.DB limited to a single
// connection, so calls hit the script in order.
func scriptDB(t *testing.T, conn *scriptConn) *sql.DB {
	t.Helper()
	db := sql.OpenDB(&scriptConnector{conn: conn})
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
