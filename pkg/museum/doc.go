// Package museum provides an in-process Go client for museum catalog search.
//
// A Client loads three artifacts once: the catalog corpus, the topic model and the
// nearest-neighbor index built from the model's per-document topic distributions.
// Queries are mapped onto topics and answered with the closest catalog records.
//
//	client, err := museum.New(ctx,
//	    museum.WithCorpus("data/processed_data.csv"),
//	    museum.WithTopicModel("models/topic_model.json"),
//	    museum.WithIndex("models/index.bin"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	exhibits, _ := client.Search(ctx, "золотая погребальная маска", 3)
//	exhibitions, _ := client.TopExhibitions(ctx, 3)
//
// Build the index once, after every topic model training run:
//
//	rows, err := museum.BuildIndex(ctx,
//	    museum.WithCorpus("data/processed_data.csv"),
//	    museum.WithTopicModel("models/topic_model.json"),
//	    museum.WithIndex("models/index.bin"),
//	)
package museum
