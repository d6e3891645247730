package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/heapdb"
	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// current SimpleHeapDB can be used as an embedded DB form only.
// so, this entry point runs a small workload and prints the results and estimations.
func main() {
	configPath := flag.String("config", "", "path of a YAML config file")
	flag.Parse()

	cfg := common.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = common.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *common.Config) error {
	db, err := heapdb.NewHeapDB(cfg)
	if err != nil {
		return err
	}
	defer db.Shutdown()

	schema_ := schema.NewSchema([]*column.Column{column.NewColumn("id", types.Integer), column.NewColumn("grp", types.Integer)})
	tableMetadata := db.GetCatalog().GetTableByName("demo")
	if tableMetadata == nil {
		if tableMetadata, err = db.CreateTable("demo", schema_); err != nil {
			return err
		}
	}

	rows := make([][]types.Value, 0)
	for i := int32(0); i < 1000; i++ {
		rows = append(rows, []types.Value{types.NewInteger(i), types.NewInteger(i % 10)})
	}
	if _, err = db.Execute(plans.NewInsertPlanNode(plans.NewValuesPlanNode(tableMetadata.Schema(), rows), tableMetadata.OID())); err != nil {
		return err
	}
	if err = db.ComputeStatistics(); err != nil {
		return err
	}

	scan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "d")
	filter := plans.NewFilterPlanNode(scan, expression.NewComparison(
		expression.NewColumnValue(0, types.Integer),
		expression.NewConstantValue(types.NewInteger(250)),
		expression.LessThan))
	agg := plans.NewAggregationPlanNode(filter, 1, 0, plans.COUNT_AGGREGATE)

	fmt.Println(plans.PlanTreeString(agg))
	estimated, err := db.EstimateCardinality(filter)
	if err != nil {
		return err
	}
	fmt.Printf("estimated rows of filter: %d\n", estimated)

	results, err := db.Execute(agg)
	if err != nil {
		return err
	}
	fmt.Println("----")
	for _, row := range heapdb.ConvTupleListToValues(agg.OutputSchema(), results) {
		for _, val := range row {
			fmt.Printf("%s ", val.String())
		}
		fmt.Println("")
	}
	return nil
}
